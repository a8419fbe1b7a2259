package view

import (
	"fmt"
	"strings"

	"github.com/limaJavier/eligibility/pkg/model"
)

type ValidateView interface {
	Render(result ValidateResult) error
}

type ValidateResult struct {
	// Catalog file, or "embedded" for the default catalog
	Source      string
	Courses     int
	Diagnostics model.Diagnostics
}

func (r ValidateResult) HasFindings() bool {
	return !r.Diagnostics.IsEmpty()
}

// Human view implementation.

type validateHumanView struct {
	*HumanView
}

func (v *validateHumanView) Render(result ValidateResult) error {
	if !result.HasFindings() {
		v.Println(Highlight("Valid!"), fmt.Sprintf("%s: %d course(s), no findings.", result.Source, result.Courses))
		return nil
	}

	diagnostics := result.Diagnostics
	tbl := v.newTable("Finding", "Course", "Detail")
	for _, unknown := range diagnostics.UnknownReferences {
		detail := fmt.Sprintf("%s names unknown course %s", unknown.Field, unknown.Reference)
		if unknown.Suggestion != "" {
			detail += fmt.Sprintf(" (did you mean %s?)", unknown.Suggestion)
		}
		tbl.AddRow("unknown reference", unknown.Course, detail)
	}
	for _, self := range diagnostics.SelfReferences {
		tbl.AddRow("self reference", self.Course, self.Field+" names the course itself")
	}
	for _, cycle := range diagnostics.PrerequisiteCycles {
		tbl.AddRow("prerequisite cycle", cycle[0], strings.Join(cycle, ", "))
	}
	for _, course := range diagnostics.Unreachable {
		tbl.AddRow("unreachable", course, "requires a course in a prerequisite cycle")
	}
	tbl.Print()
	v.Println(Alert("Warning!"), fmt.Sprintf("%s: %d course(s), %d finding(s).", result.Source, result.Courses, diagnostics.Count()))
	return nil
}

// Machine view implementation.

type validateMachineView struct {
	encoder
}

type validateMachineResult struct {
	Type        string            `json:"type" yaml:"type"`
	Status      string            `json:"status" yaml:"status"`
	Source      string            `json:"source" yaml:"source"`
	Courses     int               `json:"courses" yaml:"courses"`
	Diagnostics model.Diagnostics `json:"diagnostics" yaml:"diagnostics"`
}

func (v *validateMachineView) Render(result ValidateResult) error {
	out := validateMachineResult{
		Type:        "validate",
		Status:      "valid",
		Source:      result.Source,
		Courses:     result.Courses,
		Diagnostics: result.Diagnostics,
	}
	if result.HasFindings() {
		out.Status = "warning"
	}
	return v.encode(out)
}

func NewValidateView(v Viewer) ValidateView {
	if machine := machineView(v); machine != nil {
		return &validateMachineView{encoder: machine}
	}
	return &validateHumanView{HumanView: v.(*HumanView)}
}
