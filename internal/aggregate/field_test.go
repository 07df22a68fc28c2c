package aggregate

import "testing"

func TestClassifyField_Checkbox(t *testing.T) {
	cfg := FieldConfig{Type: FieldCheckbox, NAValues: []string{"N/A"}}

	tests := []struct {
		name  string
		value any
		want  Status
	}{
		{"bool true", true, StatusComplete},
		{"bool false", false, StatusIncomplete},
		{"number one", 1.0, StatusComplete},
		{"number zero", 0.0, StatusIncomplete},
		{"string TRUE", "TRUE", StatusComplete},
		{"string true lower", "true", StatusComplete},
		{"string 1", "1", StatusComplete},
		{"string with spaces", "  True ", StatusComplete},
		{"string FALSE", "FALSE", StatusIncomplete},
		{"na exact", "N/A", StatusNA},
		{"na lower", "n/a", StatusNA},
		{"blank", "", StatusIncomplete},
		{"nil", nil, StatusIncomplete},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyField(tt.value, cfg); got != tt.want {
				t.Errorf("ClassifyField(%v) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestClassifyField_Select(t *testing.T) {
	cfg := FieldConfig{
		Type:           FieldSelect,
		CompleteValues: []string{"Complete", "Done"},
		NAValues:       []string{"Not Required"},
	}

	tests := []struct {
		value any
		want  Status
	}{
		{"complete", StatusComplete},
		{"DONE", StatusComplete},
		{"In Progress", StatusIncomplete},
		{"not required", StatusNA},
		{"TRUE", StatusIncomplete},
		{nil, StatusIncomplete},
	}
	for _, tt := range tests {
		if got := ClassifyField(tt.value, cfg); got != tt.want {
			t.Errorf("ClassifyField(%v) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestClassifyField_NAWinsOverComplete(t *testing.T) {
	cfg := FieldConfig{
		Type:           FieldSelect,
		CompleteValues: []string{"skip"},
		NAValues:       []string{"SKIP"},
	}
	if got := ClassifyField("Skip", cfg); got != StatusNA {
		t.Errorf("ClassifyField(Skip) = %q, want %q", got, StatusNA)
	}
}

func TestClassifyField_BlankListedAsNA(t *testing.T) {
	cfg := FieldConfig{Type: FieldText, NAValues: []string{""}}
	if got := ClassifyField(nil, cfg); got != StatusNA {
		t.Errorf("ClassifyField(nil) = %q, want %q", got, StatusNA)
	}
}

func TestClassifyField_NumberAndDate(t *testing.T) {
	num := FieldConfig{Type: FieldNumber}
	if got := ClassifyField("3", num); got != StatusComplete {
		t.Errorf("number 3 = %q, want complete", got)
	}
	if got := ClassifyField("abc", num); got != StatusIncomplete {
		t.Errorf("number abc = %q, want incomplete", got)
	}

	date := FieldConfig{Type: FieldDate}
	if got := ClassifyField("2024-03-01", date); got != StatusComplete {
		t.Errorf("date = %q, want complete", got)
	}
	if got := ClassifyField("TBD", date); got != StatusIncomplete {
		t.Errorf("date TBD = %q, want incomplete", got)
	}
}
