package employee

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Field sets for the two search surfaces. The directory and export handlers
// share one filter builder so their semantics cannot drift apart.
var (
	DirectoryExactFields   = []string{"employee_id", "phone", "gender", "designation", "department"}
	DirectoryPartialFields = []string{"name", "email"}

	ExportExactFields   = []string{"employee_id", "phone", "gender"}
	ExportPartialFields = []string{"name", "designation", "email"}
)

// SearchFilter builds a case-insensitive employee filter. Exact fields must
// match the whole value, partial fields match any substring; the conditions
// are OR-combined and always intersected with "not the admin record".
// Regex metacharacters in the search term are escaped and matched literally.
func SearchFilter(search string, exactFields, partialFields []string) bson.M {
	filter := bson.M{"role": bson.M{"$ne": RoleAdmin}}
	if search == "" {
		return filter
	}

	escaped := regexp.QuoteMeta(search)
	conditions := make([]bson.M, 0, len(exactFields)+len(partialFields))
	for _, field := range exactFields {
		conditions = append(conditions, bson.M{field: primitive.Regex{Pattern: "^" + escaped + "$", Options: "i"}})
	}
	for _, field := range partialFields {
		conditions = append(conditions, bson.M{field: primitive.Regex{Pattern: escaped, Options: "i"}})
	}
	filter["$or"] = conditions
	return filter
}

// DirectoryFilter selects records for the admin listing.
func DirectoryFilter(search string) bson.M {
	return SearchFilter(search, DirectoryExactFields, DirectoryPartialFields)
}

// ExportFilter selects records for export: an explicit ID selection wins
// over a search term; with neither, every non-admin record is selected.
func ExportFilter(search string, selectedIDs []string) bson.M {
	if len(selectedIDs) > 0 {
		return bson.M{
			"role":        bson.M{"$ne": RoleAdmin},
			"employee_id": bson.M{"$in": selectedIDs},
		}
	}
	return SearchFilter(search, ExportExactFields, ExportPartialFields)
}
