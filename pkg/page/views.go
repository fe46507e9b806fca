package page

import (
	"strings"

	"github.com/goliatone/go-widgetdemo/pkg/calendar"
	"github.com/goliatone/go-widgetdemo/pkg/forms"
	"github.com/goliatone/go-widgetdemo/pkg/stopwatch"
	"github.com/goliatone/go-widgetdemo/pkg/wallclock"
)

type clockView struct {
	Zone string
	Time string
	Date string
}

func newClockView(r wallclock.Reading) clockView {
	return clockView{Zone: r.Zone, Time: r.Time, Date: r.Date}
}

type stopwatchView struct {
	Mount   string
	Display string
	Label   string
	Class   string
	Running bool
}

func newStopwatchView(mount string, s stopwatch.Snapshot) stopwatchView {
	return stopwatchView{
		Mount:   mount,
		Display: s.Display(),
		Label:   s.Label(),
		Class:   s.Class(),
		Running: s.Running,
	}
}

type calendarView struct {
	Value       string
	Display     string
	Placeholder string
	Selected    bool
	Notice      string
	Error       string
}

func newCalendarView(sel calendar.Selection, errMsg string) calendarView {
	view := calendarView{
		Value:       sel.Value(),
		Display:     sel.Display(),
		Placeholder: calendar.Placeholder,
		Error:       errMsg,
	}
	_, view.Selected = sel.Date()
	view.Notice, _ = sel.Notice()
	return view
}

type attrView struct {
	Name  string
	Value string
}

type fieldView struct {
	Name        string
	Label       string
	Type        string
	TextArea    bool
	Placeholder string
	Value       string
	Error       string
	Attributes  []attrView
}

type infoLine struct {
	Label string
	Value string
}

type infoView struct {
	Visible bool
	Toggle  string
	Heading string
	Lines   []infoLine
}

type formView struct {
	Name    string
	Action  string
	Heading string
	Submit  string
	Fields  []fieldView
	HasInfo bool
	Info    infoView
	Notice  []string
}

func newFormView(action string, form *forms.Form) formView {
	def := form.Definition()
	values := form.Values()
	errs := form.Errors()

	view := formView{
		Name:    def.Name,
		Action:  action,
		Heading: def.Heading,
		Submit:  def.Submit,
		Fields:  make([]fieldView, 0, len(def.Fields)),
	}
	for _, field := range def.Fields {
		fv := fieldView{
			Name:        field.Name,
			Label:       field.Label,
			Type:        string(field.Type),
			TextArea:    field.Type == forms.FieldTypeTextArea,
			Placeholder: field.Placeholder,
			Value:       values[field.Name],
			Error:       errs[field.Name],
		}
		for _, attr := range field.SortedAttributes() {
			fv.Attributes = append(fv.Attributes, attrView{Name: attr[0], Value: attr[1]})
		}
		view.Fields = append(view.Fields, fv)
	}

	if def.Info != nil {
		info := infoView{Visible: form.InfoVisible(), Heading: def.Info.Heading, Toggle: def.Info.Show}
		if info.Visible {
			info.Toggle = def.Info.Hide
			for _, field := range def.Fields {
				label := field.Label
				if label == "" {
					label = field.Name
				}
				info.Lines = append(info.Lines, infoLine{Label: label, Value: values[field.Name]})
			}
		}
		view.HasInfo = true
		view.Info = info
	}

	if notice := form.Notice(); notice != "" {
		view.Notice = strings.Split(notice, "\n")
	}
	return view
}
