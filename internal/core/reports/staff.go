package reports

import "github.com/JonMunkholm/painel/internal/core"

// StaffKey selects the comparison of schools with and without a
// librarian or reading-room monitor.
const StaffKey = "staff"

func init() {
	core.RegisterMode(core.ReportMode{
		Key:   StaffKey,
		Label: "Active Public Schools with Library and/or Reading Room, by Presence or Absence of Librarian/Monitor",
		Order: 2,
		Schools: core.SeriesPair{
			Title: "Active Public Schools with Library and/or Reading Room, by Presence or Absence of Librarian/Monitor",
			Series: [2]core.Series{
				{Measure: core.SchoolsWithStaff, Label: "Schools with Librarian/Monitor"},
				{Measure: core.SchoolsWithoutStaff, Label: "Schools without Librarian/Monitor"},
			},
		},
		Enrollment: core.SeriesPair{
			Title: "Students Enrolled in Active Public Schools with Library and/or Reading Room, by Presence or Absence of Librarian/Monitor",
			Series: [2]core.Series{
				{Measure: core.EnrollmentWithStaff, Label: "Enrollment in Schools with Librarian/Monitor"},
				{Measure: core.EnrollmentWithoutStaff, Label: "Enrollment in Schools without Librarian/Monitor"},
			},
		},
	})
}
