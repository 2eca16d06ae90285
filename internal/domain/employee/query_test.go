package employee

import (
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestSearchFilterEmptySearch(t *testing.T) {
	filter := DirectoryFilter("")
	want := bson.M{"role": bson.M{"$ne": RoleAdmin}}
	if !reflect.DeepEqual(filter, want) {
		t.Fatalf("got %v, want %v", filter, want)
	}
}

func TestDirectoryFilterConditions(t *testing.T) {
	filter := DirectoryFilter("ravi")

	role, ok := filter["role"].(bson.M)
	if !ok || role["$ne"] != RoleAdmin {
		t.Fatalf("admin exclusion missing: %v", filter)
	}

	conditions, ok := filter["$or"].([]bson.M)
	if !ok {
		t.Fatalf("expected $or conditions, got %v", filter)
	}
	if len(conditions) != len(DirectoryExactFields)+len(DirectoryPartialFields) {
		t.Fatalf("got %d conditions", len(conditions))
	}

	byField := map[string]primitive.Regex{}
	for _, cond := range conditions {
		for field, value := range cond {
			byField[field] = value.(primitive.Regex)
		}
	}
	for _, field := range DirectoryExactFields {
		re, ok := byField[field]
		if !ok || re.Pattern != "^ravi$" || re.Options != "i" {
			t.Fatalf("exact field %q: %+v", field, re)
		}
	}
	for _, field := range DirectoryPartialFields {
		re, ok := byField[field]
		if !ok || re.Pattern != "ravi" || re.Options != "i" {
			t.Fatalf("partial field %q: %+v", field, re)
		}
	}
}

func TestSearchFilterEscapesMetacharacters(t *testing.T) {
	filter := SearchFilter("a.b+c", []string{"employee_id"}, nil)
	conditions := filter["$or"].([]bson.M)
	re := conditions[0]["employee_id"].(primitive.Regex)
	if re.Pattern != `^a\.b\+c$` {
		t.Fatalf("metacharacters not escaped: %q", re.Pattern)
	}
}

func TestExportFilterSelectionWinsOverSearch(t *testing.T) {
	filter := ExportFilter("ravi", []string{"EMP001", "EMP002"})
	want := bson.M{
		"role":        bson.M{"$ne": RoleAdmin},
		"employee_id": bson.M{"$in": []string{"EMP001", "EMP002"}},
	}
	if !reflect.DeepEqual(filter, want) {
		t.Fatalf("got %v, want %v", filter, want)
	}
}

func TestExportFilterSearchUsesExportFields(t *testing.T) {
	filter := ExportFilter("dev", nil)
	conditions := filter["$or"].([]bson.M)
	if len(conditions) != len(ExportExactFields)+len(ExportPartialFields) {
		t.Fatalf("got %d conditions", len(conditions))
	}

	var designation primitive.Regex
	for _, cond := range conditions {
		if value, ok := cond["designation"]; ok {
			designation = value.(primitive.Regex)
		}
	}
	// Designation is a partial field on the export surface but exact on the
	// directory surface.
	if designation.Pattern != "dev" {
		t.Fatalf("designation pattern %q", designation.Pattern)
	}
}
