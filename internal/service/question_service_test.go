package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Ayush-Repositories/decyber-v2/internal/model"
	"github.com/Ayush-Repositories/decyber-v2/internal/service"
	"github.com/rs/zerolog"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func TestQuestionUpdatePartialEdit(t *testing.T) {
	ctx := context.Background()
	store := newFakeQuestionStore()
	svc := service.NewQuestionService(store, &countingBroadcaster{}, zerolog.Nop())

	q, err := svc.Create(ctx, &model.CreateQuestionRequest{
		ID:        "q-01",
		StateCode: "IN-AP",
		StateName: "Andhra Pradesh",
		Title:     "Town where the phone was found?",
		Answer:    "Nokia",
		MaxScore:  150,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if q.CurrentScore != 150 {
		t.Fatalf("new question current score = %d, want 150", q.CurrentScore)
	}

	// Edit every editable field in one partial update.
	err = svc.Update(ctx, "q-01", &model.UpdateQuestionRequest{
		Title:    strPtr("Renamed"),
		Image:    strPtr("/uploads/town.png"),
		Answer:   strPtr("Nokia|Nokian kaupunki"),
		Hint:     strPtr("Finland"),
		MaxScore: intPtr(200),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := store.GetByID(ctx, "q-01")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.Title != "Renamed" || got.Image != "/uploads/town.png" || got.Hint != "Finland" {
		t.Errorf("updated question = %+v", got)
	}
	if got.Answer != "Nokia|Nokian kaupunki" {
		t.Errorf("answer = %q", got.Answer)
	}
	if got.MaxScore != 200 || got.CurrentScore != 200 {
		t.Errorf("scores = max %d current %d, want 200/200", got.MaxScore, got.CurrentScore)
	}

	// Omitted fields are left alone.
	if err := svc.Update(ctx, "q-01", &model.UpdateQuestionRequest{Title: strPtr("Renamed again")}); err != nil {
		t.Fatalf("second update: %v", err)
	}
	got, err = store.GetByID(ctx, "q-01")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.Title != "Renamed again" || got.Hint != "Finland" || got.Image != "/uploads/town.png" {
		t.Errorf("partial update touched omitted fields: %+v", got)
	}
}

func TestQuestionUpdateUnknownID(t *testing.T) {
	ctx := context.Background()
	svc := service.NewQuestionService(newFakeQuestionStore(), &countingBroadcaster{}, zerolog.Nop())

	err := svc.Update(ctx, "missing", &model.UpdateQuestionRequest{Title: strPtr("x")})
	if !errors.Is(err, service.ErrQuestionNotFound) {
		t.Errorf("err = %v, want ErrQuestionNotFound", err)
	}
}
