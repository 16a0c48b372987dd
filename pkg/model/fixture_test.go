package model_test

import (
	"testing"

	"github.com/goliatone/go-modelkit/pkg/model"
	"github.com/goliatone/go-modelkit/pkg/testsupport"
)

func personSchema() *model.Schema {
	address := model.NewSchema("address",
		model.NewField("city"),
		model.NewField("zip"),
	)
	return model.NewSchema("person",
		model.NewField("name"),
		model.NewField("age"),
		model.NewField("address").Instantiate(address),
		model.NewField("tags").ListOf(nil),
	)
}

func TestLoadFixtureRoundTrip(t *testing.T) {
	data := testsupport.LoadFixture(t, "testdata/person.json")

	m, err := personSchema().NewFrom(data)
	if err != nil {
		t.Fatalf("construct: %v", err)
	}

	dump, err := m.Dump(false)
	if err != nil {
		t.Fatalf("dump: %v", err)
	}
	if diff := testsupport.CompareGolden(data, dump); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFixtureBytes(t *testing.T) {
	raw := testsupport.MustReadFixture(t, "testdata/person.json")

	m := personSchema().New()
	if err := m.LoadBytes(raw); err != nil {
		t.Fatalf("load bytes: %v", err)
	}
	if got := m.MustGet("name"); got != "Ada Lovelace" {
		t.Fatalf("name = %v", got)
	}
}
