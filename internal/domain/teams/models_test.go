package teams

import (
	"reflect"
	"testing"
)

func TestTeamTags(t *testing.T) {
	type fieldCheck struct {
		name    string
		csvTag  string
		jsonTag string
	}
	teamType := reflect.TypeOf(Team{})
	fields := []fieldCheck{
		{"Code", "Team", "code"},
		{"Name", "Team_Name", "name"},
		{"NetSurplus", "Surplus_value", "netSurplus"},
	}
	for _, fc := range fields {
		f, ok := teamType.FieldByName(fc.name)
		if !ok {
			t.Fatalf("missing field %s", fc.name)
		}
		if tag := f.Tag.Get("csv"); tag != fc.csvTag {
			t.Fatalf("field %s expected csv tag %s, got %s", fc.name, fc.csvTag, tag)
		}
		if tag := f.Tag.Get("json"); tag != fc.jsonTag {
			t.Fatalf("field %s expected json tag %s, got %s", fc.name, fc.jsonTag, tag)
		}
	}
}
