package tui

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-widgetdemo/pkg/forms"
)

type stubDriver struct {
	inputs       []string
	textAreas    []string
	confirm      []bool
	prompts      []string
	infoMessages []string
	inputPos     int
	textPos      int
	confirmPos   int
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	s.prompts = append(s.prompts, cfg.Message)
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, cfg TextAreaConfig) (string, error) {
	s.prompts = append(s.prompts, cfg.Message)
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no textarea scripted")
	}
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func definition(t *testing.T, name string) forms.Definition {
	t.Helper()
	registry, err := forms.Default()
	if err != nil {
		t.Fatalf("forms: %v", err)
	}
	def, err := registry.Get(name)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	return def
}

func TestSession_RepromptsFailingFields(t *testing.T) {
	driver := &stubDriver{
		inputs:  []string{"A", "Doe", "1949-12-31", "Ann", "1960-01-01"},
		confirm: []bool{true},
	}
	var delivered []forms.Submission
	sink := forms.SinkFunc(func(_ context.Context, s forms.Submission) error {
		delivered = append(delivered, s)
		return nil
	})

	session := New(WithPromptDriver(driver), WithSink(sink), WithTheme(Theme{ErrorPrefix: "! "}))
	form, err := session.Run(context.Background(), definition(t, "clients"))
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	wantPrompts := []string{"Nom", "Prénom", "Date de Naissance", "Nom", "Date de Naissance"}
	if diff := cmp.Diff(wantPrompts, driver.prompts); diff != "" {
		t.Fatalf("prompts mismatch (-want +got):\n%s", diff)
	}
	wantInfo := []string{
		"Formulaire Client",
		"! Nom est obligatoire, entre 2 et 40 caractères, sans chiffres.",
		"! Date de Naissance doit être après le 01/01/1950.",
		"Formulaire soumis avec succès !",
		"Informations Saisies",
		"Nom: Ann",
		"Prénom: Doe",
		"Date de Naissance: 1960-01-01",
	}
	if diff := cmp.Diff(wantInfo, driver.infoMessages); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}
	if len(delivered) != 1 || delivered[0].Values["nom"] != "Ann" {
		t.Fatalf("expected one delivery with corrected values, got %+v", delivered)
	}
	if !form.InfoVisible() {
		t.Fatalf("expected info panel visible after confirm")
	}
}

func TestSession_UserFormSummary(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Ada", "Lovelace", "36", "", "2024-06-01"},
		textAreas: []string{"hi"},
	}
	session := New(WithPromptDriver(driver))
	if _, err := session.Run(context.Background(), definition(t, "user")); err != nil {
		t.Fatalf("run: %v", err)
	}
	last := driver.infoMessages[len(driver.infoMessages)-1]
	want := "Name: Ada Lovelace\nAge: 36\nEmail: \nDate: Sat Jun 01 2024\nMessage: hi"
	if last != want {
		t.Fatalf("summary mismatch:\nwant %q\ngot  %q", want, last)
	}
}

func TestSession_MaxAttempts(t *testing.T) {
	driver := &stubDriver{inputs: []string{"Ada", "Lovelace", "17", "", "", "abc"}, textAreas: []string{""}}
	session := New(WithPromptDriver(driver), WithMaxAttempts(2))
	_, err := session.Run(context.Background(), definition(t, "user"))
	if !errors.Is(err, ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
	if driver.inputPos != 6 {
		t.Fatalf("expected age to be prompted again once, consumed %d inputs", driver.inputPos)
	}
}

func TestSession_PropagatesDriverErrors(t *testing.T) {
	session := New(WithPromptDriver(&stubDriver{}))
	_, err := session.Run(context.Background(), definition(t, "clients"))
	if err == nil {
		t.Fatalf("expected error when the driver has no input")
	}
}
