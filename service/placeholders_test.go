package service

import (
	"database/sql"
	"errors"
	"reflect"
	"testing"

	"sqlintent/models"
)

func TestBindPlaceholdersSQLServer(t *testing.T) {
	query, args, err := bindPlaceholders(
		"SELECT * FROM SALES WHERE YEAR = :year AND REGION = :region",
		"sqlserver",
		models.Params{"year": 2023, "region": "west"},
	)
	if err != nil {
		t.Fatalf("bindPlaceholders: %v", err)
	}

	want := "SELECT * FROM SALES WHERE YEAR = @year AND REGION = @region"
	if query != want {
		t.Errorf("query = %q, want %q", query, want)
	}
	wantArgs := []interface{}{sql.Named("year", 2023), sql.Named("region", "west")}
	if !reflect.DeepEqual(args, wantArgs) {
		t.Errorf("args = %v, want %v", args, wantArgs)
	}
}

func TestBindPlaceholdersPostgres(t *testing.T) {
	query, args, err := bindPlaceholders(
		"SELECT * FROM SALES WHERE YEAR = :year AND REGION = :region",
		"postgres",
		models.Params{"year": 2023, "region": "west"},
	)
	if err != nil {
		t.Fatalf("bindPlaceholders: %v", err)
	}

	want := "SELECT * FROM SALES WHERE YEAR = $1 AND REGION = $2"
	if query != want {
		t.Errorf("query = %q, want %q", query, want)
	}
	if !reflect.DeepEqual(args, []interface{}{2023, "west"}) {
		t.Errorf("args = %v", args)
	}
}

func TestBindPlaceholdersRepeatedName(t *testing.T) {
	query, args, err := bindPlaceholders(
		"SELECT :year AS y WHERE YEAR = :year",
		"postgres",
		models.Params{"year": 2023},
	)
	if err != nil {
		t.Fatalf("bindPlaceholders: %v", err)
	}

	if query != "SELECT $1 AS y WHERE YEAR = $1" {
		t.Errorf("repeated placeholder should reuse the ordinal: %q", query)
	}
	if len(args) != 1 {
		t.Errorf("repeated placeholder should bind one arg, got %v", args)
	}
}

func TestBindPlaceholdersSkipsCasts(t *testing.T) {
	query, _, err := bindPlaceholders(
		"SELECT total::numeric FROM t WHERE y = :year",
		"postgres",
		models.Params{"year": 2023},
	)
	if err != nil {
		t.Fatalf("bindPlaceholders: %v", err)
	}
	if query != "SELECT total::numeric FROM t WHERE y = $1" {
		t.Errorf("cast was rewritten: %q", query)
	}
}

func TestBindPlaceholdersMissingParam(t *testing.T) {
	_, _, err := bindPlaceholders(
		"SELECT * FROM SALES WHERE YEAR = :year",
		"sqlserver",
		models.Params{},
	)

	var missing *MissingParameterError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingParameterError, got %v", err)
	}
	if missing.Param != "year" {
		t.Errorf("Param = %q, want year", missing.Param)
	}
}
