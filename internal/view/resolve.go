package view

import (
	"strings"

	"github.com/limaJavier/eligibility/pkg/model"
)

type ResolveView interface {
	Render(result ResolveResult) error
}

type ResolveResult struct {
	Completed []string
	Groups    []model.EligibilityGroup
}

// Human view implementation.

type resolveHumanView struct {
	*HumanView
}

func (v *resolveHumanView) Render(result ResolveResult) error {
	if len(result.Groups) == 0 {
		v.Println(Highlight("No eligible courses"), "for", len(result.Completed), "completed course(s).")
		return nil
	}

	tbl := v.newTable("Group", "Courses")
	for i, group := range result.Groups {
		tbl.AddRow(i+1, strings.Join(group.Courses, " + "))
	}
	tbl.Print()
	v.Println(Highlight("%d", len(result.Groups)), "eligible group(s) for", len(result.Completed), "completed course(s).")
	return nil
}

// Machine view implementation: the eligibleCourses payload.

type resolveMachineView struct {
	encoder
}

func (v *resolveMachineView) Render(result ResolveResult) error {
	return v.encode(model.NewEligibilityResponse(result.Groups))
}

func NewResolveView(v Viewer) ResolveView {
	if machine := machineView(v); machine != nil {
		return &resolveMachineView{encoder: machine}
	}
	return &resolveHumanView{HumanView: v.(*HumanView)}
}
