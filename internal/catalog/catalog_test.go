package catalog

import (
	"strings"
	"testing"

	"github.com/abhisek/certprep/internal/exam"
)

func TestValidate_SeedCatalogPasses(t *testing.T) {
	if err := Validate(); err != nil {
		t.Fatalf("seed catalog validation failed: %v", err)
	}
}

func TestValidateExams_DetectsDuplicateID(t *testing.T) {
	list := []Exam{
		{ID: "cwi", Name: "CWI", Categories: []string{"a"}, QuestionCount: 1, TimeLimitMins: 1},
		{ID: "CWI", Name: "CWI again", Categories: []string{"a"}, QuestionCount: 1, TimeLimitMins: 1},
	}
	err := validateExams(list)
	if err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("error = %v, want duplicate", err)
	}
}

func TestValidateExams_DetectsMissingCategories(t *testing.T) {
	list := []Exam{{ID: "x", Name: "X", QuestionCount: 1, TimeLimitMins: 1}}
	err := validateExams(list)
	if err == nil || !strings.Contains(err.Error(), "no categories") {
		t.Fatalf("error = %v, want no categories", err)
	}
}

func TestLookup(t *testing.T) {
	tests := map[string]string{
		"api-510": "API 510",
		"API-510": "API 510",
		"api 653": "API 653",
		"cwi":     "CWI",
	}
	for in, want := range tests {
		e, ok := Lookup(in)
		if !ok {
			t.Errorf("Lookup(%q) not found", in)
			continue
		}
		if e.Name != want {
			t.Errorf("Lookup(%q).Name = %q, want %q", in, e.Name, want)
		}
	}
	if _, ok := Lookup("pmp"); ok {
		t.Error("Lookup(pmp) should not be found")
	}
}

func TestTimeLimitSecs(t *testing.T) {
	e, _ := Get("api-510")

	if got := e.TimeLimitSecs(exam.ModePractice, 10); got != 0 {
		t.Errorf("practice TimeLimitSecs = %d, want 0", got)
	}
	if got := e.TimeLimitSecs(exam.ModeExam, 150); got != 270*60 {
		t.Errorf("full exam TimeLimitSecs = %d, want %d", got, 270*60)
	}
	if got := e.TimeLimitSecs(exam.ModeExam, 10); got != 1080 {
		t.Errorf("10-question TimeLimitSecs = %d, want 1080", got)
	}
	if got := e.TimeLimitSecs(exam.ModeExam, 0); got != 270*60 {
		t.Errorf("default count TimeLimitSecs = %d, want %d", got, 270*60)
	}
}

func TestParseMode(t *testing.T) {
	if m, ok := ParseMode(""); !ok || m != exam.ModePractice {
		t.Errorf("ParseMode(\"\") = %q, %v", m, ok)
	}
	if m, ok := ParseMode("Timed"); !ok || m != exam.ModeExam {
		t.Errorf("ParseMode(Timed) = %q, %v", m, ok)
	}
	if _, ok := ParseMode("sprint"); ok {
		t.Error("ParseMode(sprint) should fail")
	}
}

func TestAll_ReturnsCopy(t *testing.T) {
	list := All()
	list[0].Name = "changed"
	if All()[0].Name == "changed" {
		t.Error("All() leaked the package slice")
	}
}
