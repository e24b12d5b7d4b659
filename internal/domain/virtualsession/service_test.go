package virtualsession

import (
	"context"
	"strconv"
	"testing"
	"time"
)

type stubStore struct {
	byID   map[string]*VirtualSession
	nextID int
}

func newStubStore() *stubStore {
	return &stubStore{byID: make(map[string]*VirtualSession)}
}

func (s *stubStore) Create(_ context.Context, v VirtualSession) (*VirtualSession, error) {
	s.nextID++
	v.ID = "v" + strconv.Itoa(s.nextID)
	cp := v
	s.byID[cp.ID] = &cp
	return &v, nil
}

func (s *stubStore) Get(_ context.Context, id string) (*VirtualSession, error) {
	v, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *v
	return &cp, nil
}

func (s *stubStore) Update(_ context.Context, id string, updates map[string]interface{}) (*VirtualSession, error) {
	v, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	for k, val := range updates {
		switch k {
		case "title":
			v.Title = val.(string)
		case "trainerName":
			v.TrainerName = val.(string)
		case "trainerKey":
			v.TrainerKey = val.(string)
		case "date":
			v.Date = val.(string)
		case "startTime":
			v.StartTime = val.(string)
		case "endTime":
			v.EndTime = val.(string)
		case "meetingLink":
			v.MeetingLink = val.(string)
		}
	}
	cp := *v
	return &cp, nil
}

func (s *stubStore) Delete(_ context.Context, id string) error {
	if _, ok := s.byID[id]; !ok {
		return ErrNotFound
	}
	delete(s.byID, id)
	return nil
}

func (s *stubStore) List(_ context.Context, trainerKey string) ([]VirtualSession, error) {
	var out []VirtualSession
	for _, v := range s.byID {
		if trainerKey == "" || v.TrainerKey == trainerKey {
			out = append(out, *v)
		}
	}
	return out, nil
}

func validInput() CreateInput {
	return CreateInput{
		Title:       "Online HIIT",
		TrainerName: "Jane Doe",
		Date:        "2026-09-15",
		StartTime:   "09:00",
		EndTime:     "10:00",
		MeetingLink: "https://meet.example.com/hiit",
	}
}

func TestCreateNormalizesTrainerKey(t *testing.T) {
	svc := NewService(newStubStore())

	in := validInput()
	in.TrainerName = "  Jane   DOE "
	v, err := svc.Create(context.Background(), "admin1", in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if v.TrainerName != "Jane   DOE" {
		t.Fatalf("expected trimmed name, got %q", v.TrainerName)
	}
	if v.TrainerKey != "jane doe" {
		t.Fatalf("expected normalized key, got %q", v.TrainerKey)
	}
}

func TestCreateValidation(t *testing.T) {
	svc := NewService(newStubStore())

	cases := []struct {
		name   string
		mutate func(*CreateInput)
	}{
		{"missing title", func(in *CreateInput) { in.Title = "" }},
		{"missing trainer", func(in *CreateInput) { in.TrainerName = "" }},
		{"bad date", func(in *CreateInput) { in.Date = "15/09/2026" }},
		{"bad start time", func(in *CreateInput) { in.StartTime = "25:00" }},
		{"bad end time", func(in *CreateInput) { in.EndTime = "9:61" }},
		{"end before start", func(in *CreateInput) { in.StartTime = "10:00"; in.EndTime = "09:00" }},
		{"end equals start", func(in *CreateInput) { in.EndTime = in.StartTime }},
		{"missing link", func(in *CreateInput) { in.MeetingLink = "" }},
	}
	for _, tc := range cases {
		in := validInput()
		tc.mutate(&in)
		if _, err := svc.Create(context.Background(), "admin1", in); !IsErrBadRequest(err) {
			t.Errorf("%s: expected bad request, got %v", tc.name, err)
		}
	}
}

func TestCreateAcceptsSingleDigitHour(t *testing.T) {
	svc := NewService(newStubStore())

	in := validInput()
	in.StartTime = "9:00"
	in.EndTime = "10:30"
	if _, err := svc.Create(context.Background(), "admin1", in); err != nil {
		t.Fatalf("expected 9:00 to be accepted, got %v", err)
	}
}

func TestUpdateReordersTimesAcrossFields(t *testing.T) {
	store := newStubStore()
	svc := NewService(store)

	v, err := svc.Create(context.Background(), "admin1", validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Moving only the start past the stored end must fail.
	late := "11:00"
	if _, err := svc.Update(context.Background(), v.ID, UpdateInput{StartTime: &late}); !IsErrBadRequest(err) {
		t.Fatalf("expected ordering violation, got %v", err)
	}

	// Moving both together is fine.
	start, end := "11:00", "12:00"
	out, err := svc.Update(context.Background(), v.ID, UpdateInput{StartTime: &start, EndTime: &end})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if out.StartTime != "11:00" || out.EndTime != "12:00" {
		t.Fatalf("unexpected times: %s-%s", out.StartTime, out.EndTime)
	}
}

func TestUpdateTrainerNameRefreshesKey(t *testing.T) {
	store := newStubStore()
	svc := NewService(store)

	v, _ := svc.Create(context.Background(), "admin1", validInput())
	name := "Alex Kim"
	out, err := svc.Update(context.Background(), v.ID, UpdateInput{TrainerName: &name})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if out.TrainerKey != "alex kim" {
		t.Fatalf("expected refreshed key, got %q", out.TrainerKey)
	}
}

func TestListFiltersByTrainerName(t *testing.T) {
	store := newStubStore()
	svc := NewService(store)

	if _, err := svc.Create(context.Background(), "admin1", validInput()); err != nil {
		t.Fatalf("create: %v", err)
	}
	other := validInput()
	other.TrainerName = "Alex Kim"
	if _, err := svc.Create(context.Background(), "admin1", other); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.List(context.Background(), "JANE doe")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].TrainerName != "Jane Doe" {
		t.Fatalf("expected only Jane Doe, got %+v", got)
	}
}

func TestStartsAt(t *testing.T) {
	v := VirtualSession{Date: "2026-09-15", StartTime: "9:30"}
	got := v.StartsAt(time.UTC)
	want := time.Date(2026, 9, 15, 9, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	bad := VirtualSession{Date: "nope", StartTime: "9:30"}
	if !bad.StartsAt(time.UTC).IsZero() {
		t.Fatalf("expected zero time for malformed date")
	}
}
