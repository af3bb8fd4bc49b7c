package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestDataLoadErrorMessageIdentifiesLocation(t *testing.T) {
	err := &DataLoadError{Source: "players.csv", Row: 3, Column: "Pos", Err: errors.New("unknown position")}

	want := `data load failed: players.csv row 3 column "Pos": unknown position`
	if err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}
}

func TestDataLoadErrorUnwrapsToConfigError(t *testing.T) {
	cause := &ConfigError{Field: "bracket", Value: "35"}
	err := fmt.Errorf("load: %w", &DataLoadError{Source: "players.csv", Row: 1, Err: cause})

	if _, ok := AsDataLoadError(err); !ok {
		t.Fatalf("expected DataLoadError in chain")
	}
	cfgErr, ok := AsConfigError(err)
	if !ok {
		t.Fatalf("expected ConfigError in chain")
	}
	if cfgErr.Value != "35" {
		t.Fatalf("unexpected config error %+v", cfgErr)
	}
}

func TestNotFoundErrorMessage(t *testing.T) {
	err := fmt.Errorf("query: %w", &NotFoundError{Kind: "player", Key: "Nobody"})

	nf, ok := AsNotFoundError(err)
	if !ok {
		t.Fatalf("expected NotFoundError")
	}
	if nf.Error() != `player not found: "Nobody"` {
		t.Fatalf("unexpected message %q", nf.Error())
	}
	if _, ok := AsDataLoadError(err); ok {
		t.Fatalf("did not expect DataLoadError")
	}
}
