package placement_test

import (
	"context"
	"errors"
	"testing"

	"pawpad.org/internal/dogs"
	"pawpad.org/internal/placement"
	"pawpad.org/internal/store/memory"
)

func setup(t *testing.T) (*placement.Service, *memory.Store, int64) {
	t.Helper()
	st := memory.New()
	svc := placement.NewService(st, st)
	d := &dogs.Dog{DogName: "Buddy"}
	if err := st.CreateDog(context.Background(), d); err != nil {
		t.Fatalf("create dog: %v", err)
	}
	return svc, st, d.ID
}

func TestSubmitAdoptionMarksDog(t *testing.T) {
	svc, st, dogID := setup(t)
	ctx := context.Background()

	a := &placement.Adoption{DogID: dogID, AdopterName: "Jordan Smith"}
	if err := svc.SubmitAdoption(ctx, a); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if a.ID == 0 {
		t.Fatal("expected assigned id")
	}

	d, err := st.FindDog(ctx, dogID)
	if err != nil {
		t.Fatalf("find dog: %v", err)
	}
	if d.DogStatus != dogs.StatusAdopted {
		t.Fatalf("dog status = %q, want %q", d.DogStatus, dogs.StatusAdopted)
	}
}

func TestSubmitAdoptionMissingDog(t *testing.T) {
	svc, _, _ := setup(t)

	err := svc.SubmitAdoption(context.Background(), &placement.Adoption{DogID: 42, AdopterName: "X"})
	if !errors.Is(err, placement.ErrDogNotFound) {
		t.Fatalf("err = %v, want ErrDogNotFound", err)
	}
}

func TestRemoveAdoptionRevertsDog(t *testing.T) {
	svc, st, dogID := setup(t)
	ctx := context.Background()

	if err := svc.SubmitAdoption(ctx, &placement.Adoption{DogID: dogID, AdopterName: "Jordan"}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := svc.RemoveAdoption(ctx, dogID); err != nil {
		t.Fatalf("remove: %v", err)
	}

	d, err := st.FindDog(ctx, dogID)
	if err != nil {
		t.Fatalf("find dog: %v", err)
	}
	if d.DogStatus != dogs.StatusCurrent {
		t.Fatalf("dog status = %q, want %q", d.DogStatus, dogs.StatusCurrent)
	}
	if _, err := svc.AdoptionByDog(ctx, dogID); !errors.Is(err, placement.ErrNotFound) {
		t.Fatalf("adoption still present: err = %v", err)
	}
}

func TestFosterLifecycle(t *testing.T) {
	svc, st, dogID := setup(t)
	ctx := context.Background()

	if err := svc.SubmitFoster(ctx, &placement.Foster{DogID: dogID, FosterName: "Sam Lee"}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	d, err := st.FindDog(ctx, dogID)
	if err != nil {
		t.Fatalf("find dog: %v", err)
	}
	if d.DogStatus != dogs.StatusFostered {
		t.Fatalf("dog status = %q, want %q", d.DogStatus, dogs.StatusFostered)
	}

	f, err := svc.FosterByDog(ctx, dogID)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if f.FosterName != "Sam Lee" || f.DogStatus != dogs.StatusFostered {
		t.Fatalf("unexpected foster: %+v", f)
	}

	if err := svc.RemoveFoster(ctx, dogID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	d, err = st.FindDog(ctx, dogID)
	if err != nil {
		t.Fatalf("find dog: %v", err)
	}
	if d.DogStatus != dogs.StatusCurrent {
		t.Fatalf("dog status after removal = %q", d.DogStatus)
	}
}
