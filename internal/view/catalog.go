package view

import (
	"strings"

	"github.com/limaJavier/eligibility/pkg/model"
)

type CatalogView interface {
	Render(catalog *model.Catalog) error
}

type catalogHumanView struct {
	*HumanView
}

func (v *catalogHumanView) Render(catalog *model.Catalog) error {
	tbl := v.newTable("Course", "Prerequisites", "Corequisites", "Either of")
	for _, entry := range catalog.Entries() {
		tbl.AddRow(entry.Course, joinOrDash(entry.Rule.Prerequisites), joinOrDash(entry.Rule.Corequisites), joinOrDash(entry.Rule.EitherOf))
	}
	tbl.Print()
	v.Println(Highlight("%d", catalog.Len()), "course(s).")
	return nil
}

// The catalog is written in the same shape it is read from
type catalogMachineView struct {
	encoder
}

func (v *catalogMachineView) Render(catalog *model.Catalog) error {
	return v.encode(catalog)
}

func NewCatalogView(v Viewer) CatalogView {
	if machine := machineView(v); machine != nil {
		return &catalogMachineView{encoder: machine}
	}
	return &catalogHumanView{HumanView: v.(*HumanView)}
}

func joinOrDash(ids []string) string {
	if len(ids) == 0 {
		return "-"
	}
	return strings.Join(ids, ", ")
}
