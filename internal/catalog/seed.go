package catalog

import "strings"

var exams = []Exam{
	{
		ID:          "api-510",
		Name:        "API 510",
		Body:        "API",
		Description: "Pressure Vessel Inspector",
		Categories: []string{
			"Inspection Practices",
			"Code Calculations",
			"Welding and NDE",
			"Pressure Testing",
			"Repairs and Alterations",
			"Corrosion and Damage Mechanisms",
		},
		QuestionCount: 150,
		TimeLimitMins: 270,
	},
	{
		ID:          "api-570",
		Name:        "API 570",
		Body:        "API",
		Description: "Piping Inspector",
		Categories: []string{
			"Inspection Planning",
			"Thickness and Remaining Life",
			"Welding and NDE",
			"Pressure Testing",
			"Repairs and Alterations",
			"Corrosion and Damage Mechanisms",
		},
		QuestionCount: 150,
		TimeLimitMins: 270,
	},
	{
		ID:          "api-653",
		Name:        "API 653",
		Body:        "API",
		Description: "Aboveground Storage Tank Inspector",
		Categories: []string{
			"Tank Inspection",
			"Shell and Bottom Evaluation",
			"Settlement",
			"Welding and NDE",
			"Repairs and Reconstruction",
		},
		QuestionCount: 150,
		TimeLimitMins: 270,
	},
	{
		ID:          "cwi",
		Name:        "CWI",
		Body:        "AWS",
		Description: "Certified Welding Inspector",
		Categories: []string{
			"Welding Processes",
			"Weld Symbols",
			"Discontinuities",
			"Destructive and Nondestructive Testing",
			"Metallurgy",
			"Safety",
		},
		QuestionCount: 150,
		TimeLimitMins: 120,
	},
	{
		ID:          "cswip-3.1",
		Name:        "CSWIP 3.1",
		Body:        "TWI",
		Description: "Welding Inspector",
		Categories: []string{
			"Duties of a Welding Inspector",
			"Weld Imperfections",
			"Welding Processes",
			"Mechanical Testing",
			"Weld Symbols",
		},
		QuestionCount: 60,
		TimeLimitMins: 90,
	},
}

var byID = func() map[string]Exam {
	m := make(map[string]Exam, len(exams))
	for _, e := range exams {
		m[strings.ToLower(e.ID)] = e
	}
	return m
}()
