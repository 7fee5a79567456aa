package reports

import "github.com/JonMunkholm/painel/internal/core"

// LibraryKey selects the comparison of schools with and without a library
// or reading room.
const LibraryKey = "library"

func init() {
	core.RegisterMode(core.ReportMode{
		Key:   LibraryKey,
		Label: "Active Public Schools by Presence or Absence of Library and/or Reading Room",
		Order: 1,
		Schools: core.SeriesPair{
			Title: "Active Public Schools in the Year, by Presence or Absence of Library and/or Reading Room",
			Series: [2]core.Series{
				{Measure: core.SchoolsWithLibrary, Label: "Schools with Library/Reading Room"},
				{Measure: core.SchoolsWithoutLibrary, Label: "Schools without Library/Reading Room"},
			},
		},
		Enrollment: core.SeriesPair{
			Title: "Students Enrolled in Active Public Schools, Equipped or Not with Library and/or Reading Room",
			Series: [2]core.Series{
				{Measure: core.EnrollmentWithLibrary, Label: "Enrollment in Schools with Library/Reading Room"},
				{Measure: core.EnrollmentWithoutLibrary, Label: "Enrollment in Schools without Library/Reading Room"},
			},
		},
	})
}
