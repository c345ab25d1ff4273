// Package demo loads the demo accounts and sample events a fresh
// installation starts with.
package demo

import (
	"context"
	"time"

	"github.com/gdg-garage/eventflow-api/internal/events"
	"github.com/gdg-garage/eventflow-api/internal/models"
	"github.com/gdg-garage/eventflow-api/internal/users"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const (
	StudentEmail   = "student@gmail.com"
	OrganizerEmail = "organizer@gmail.com"
)

var (
	Student = models.User{
		ID:        "demo-student",
		Email:     StudentEmail,
		Phone:     "1234567890",
		Role:      models.RoleStudent,
		Name:      "Demo Student",
		CollegeID: "DEMO2024",
	}
	Organizer = models.User{
		ID:            "demo-organizer",
		Email:         OrganizerEmail,
		Phone:         "9876543210",
		Role:          models.RoleOrganizer,
		Name:          "Demo Organizer",
		OrganizerRole: models.OrganizerRoleTeacher,
		Department:    "Computer Science",
	}
)

type sampleEvent struct {
	organizer string
	input     events.CreateEventInput
}

// Campus-wide events, run by departments that have no account of their own.
var campusEvents = []sampleEvent{
	{"Dr. Sharma", events.CreateEventInput{
		Title: "Tech Innovation Summit 2026", Date: "2026-02-15", Time: "10:00",
		Location: "Main Auditorium", Category: models.CategoryTechnology, Capacity: 300,
		Description: "Annual tech summit featuring industry leaders and innovative startups",
	}},
	{"Cultural Committee", events.CreateEventInput{
		Title: "Cultural Fest: Harmony 2026", Date: "2026-02-20", Time: "16:00",
		Location: "Open Ground", Category: models.CategoryCultural, Capacity: 800,
		Description: "Three-day cultural extravaganza celebrating diversity and talent",
	}},
	{"Placement Cell", events.CreateEventInput{
		Title: "Career Fair & Networking", Date: "2026-02-25", Time: "09:00",
		Location: "Conference Hall", Category: models.CategoryCareer, Capacity: 250,
		Description: "Meet top recruiters and explore career opportunities",
	}},
	{"Sports Department", events.CreateEventInput{
		Title: "Inter-College Basketball Tournament", Date: "2026-03-05", Time: "14:00",
		Location: "Sports Complex", Category: models.CategorySports, Capacity: 500,
		Description: "Annual basketball championship with teams from 12 colleges",
	}},
	{"CS Department", events.CreateEventInput{
		Title: "AI & Machine Learning Workshop", Date: "2026-03-10", Time: "11:00",
		Location: "Lab 301", Category: models.CategoryAcademic, Capacity: 100,
		Description: "Hands-on workshop on latest AI/ML frameworks and techniques",
	}},
}

// Events owned by the demo organizer.
var organizerEvents = []events.CreateEventInput{
	{
		Title: "Startup Pitch Competition", Date: "2026-03-15", Time: "15:00",
		Location: "Innovation Hub", Category: models.CategoryTechnology, Capacity: 150,
		Description: "Students pitch their startup ideas to industry experts",
	},
	{
		Title: "Annual Science Exhibition", Date: "2026-03-20", Time: "10:00",
		Location: "Science Block", Category: models.CategoryAcademic, Capacity: 200,
		Description: "Showcase of innovative science projects by students",
	},
}

type Result struct {
	Users  int
	Events int
}

// Seed adds the demo accounts that are missing and, when the catalog is
// empty, the sample events. Running it twice adds nothing the second time.
// directory should have no session attached so seeding signs nobody in.
func Seed(ctx context.Context, directory *users.Directory, catalog *events.Catalog) (Result, error) {
	var res Result

	for _, u := range []models.User{Student, Organizer} {
		_, err := directory.FindByEmail(ctx, u.Email)
		if err == nil {
			continue
		}
		if !errors.Is(err, users.ErrNotFound) {
			return res, err
		}
		u.CreatedAt = time.Now()
		if err := directory.Save(ctx, u); err != nil {
			return res, errors.Wrapf(err, "failed to save demo user %s", u.Email)
		}
		res.Users++
	}

	existing, err := catalog.GetAll(ctx)
	if err != nil {
		return res, err
	}
	if len(existing) > 0 {
		log.Debug().Int("events", len(existing)).Msg("Catalog not empty, skipping sample events")
		return res, nil
	}

	for _, e := range campusEvents {
		host := models.User{ID: "campus", Name: e.organizer, Role: models.RoleOrganizer}
		if _, err := catalog.Create(ctx, e.input, host); err != nil {
			return res, errors.Wrapf(err, "failed to create sample event %q", e.input.Title)
		}
		res.Events++
	}
	for _, in := range organizerEvents {
		if _, err := catalog.Create(ctx, in, Organizer); err != nil {
			return res, errors.Wrapf(err, "failed to create sample event %q", in.Title)
		}
		res.Events++
	}

	log.Info().Int("users", res.Users).Int("events", res.Events).Msg("Demo data seeded")
	return res, nil
}
