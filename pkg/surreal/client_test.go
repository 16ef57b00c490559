package surreal

import (
	"testing"
)

func TestValidateIdentifier(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"Valid simple", "memories", false},
		{"Valid with underscore", "user_id", false},
		{"Valid with numbers", "field1", false},
		{"Valid with mixed case", "UserId", false},
		{"Invalid space", "user id", true},
		{"Invalid semicolon", "user;id", true},
		{"Invalid dash", "user-id", true},
		{"Invalid special char", "user$", true},
		{"Invalid SQL injection", "memories; DROP TABLE memories", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := validateIdentifier(tt.input); (err != nil) != tt.wantErr {
				t.Errorf("validateIdentifier() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestBuildWhereClause(t *testing.T) {
	tests := []struct {
		name    string
		filter  map[string]interface{}
		want    string // We might need partial matching because map iteration order is random
		wantErr bool
	}{
		{
			name:    "Empty filter",
			filter:  map[string]interface{}{},
			want:    "true",
			wantErr: false,
		},
		{
			name:    "Single filter",
			filter:  map[string]interface{}{"user_id": "123"},
			want:    "user_id = $user_id",
			wantErr: false,
		},
		{
			name:    "Invalid key",
			filter:  map[string]interface{}{"user id": "123"},
			want:    "",
			wantErr: true,
		},
		{
			name:    "Injection key",
			filter:  map[string]interface{}{"id; --": "123"},
			want:    "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := buildWhereClause(tt.filter)
			if (err != nil) != tt.wantErr {
				t.Errorf("buildWhereClause() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("buildWhereClause() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuildWhereClause_SortedKeys(t *testing.T) {
	got, err := buildWhereClause(map[string]interface{}{"category": "greeting", "archetype": "formal", "adult_only": false})
	if err != nil {
		t.Fatalf("buildWhereClause() error = %v", err)
	}
	want := "adult_only = $adult_only AND archetype = $archetype AND category = $category"
	if got != want {
		t.Errorf("buildWhereClause() = %v, want %v", got, want)
	}
}

func TestBuildSelect(t *testing.T) {
	got, err := buildSelect("prompt", []string{"slug", "body"}, map[string]interface{}{"category": "greeting"})
	if err != nil {
		t.Fatalf("buildSelect() error = %v", err)
	}
	if want := "SELECT slug, body FROM prompt WHERE category = $category;"; got != want {
		t.Errorf("buildSelect() = %v, want %v", got, want)
	}

	if _, err := buildSelect("prompt; DELETE prompt", nil, nil); err == nil {
		t.Error("expected error for invalid table")
	}
	if _, err := buildSelect("prompt", []string{"body, password"}, nil); err == nil {
		t.Error("expected error for invalid field")
	}

	got, err = buildSelect("prompt", nil, nil)
	if err != nil {
		t.Fatalf("buildSelect() error = %v", err)
	}
	if want := "SELECT * FROM prompt WHERE true;"; got != want {
		t.Errorf("buildSelect() = %v, want %v", got, want)
	}
}
