package gorm

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IDs are assigned app-side so the models behave identically on Postgres
// and on the sqlite databases the tests run against.

func ensureID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}

func (b *Booking) BeforeCreate(*gorm.DB) error            { ensureID(&b.ID); return nil }
func (d *BookingDetails) BeforeCreate(*gorm.DB) error     { ensureID(&d.ID); return nil }
func (f *BookingFlightTimes) BeforeCreate(*gorm.DB) error { ensureID(&f.ID); return nil }
func (a *Aircraft) BeforeCreate(*gorm.DB) error           { ensureID(&a.ID); return nil }
func (r *AircraftRate) BeforeCreate(*gorm.DB) error       { ensureID(&r.ID); return nil }
func (f *FlightType) BeforeCreate(*gorm.DB) error         { ensureID(&f.ID); return nil }
func (d *Defect) BeforeCreate(*gorm.DB) error             { ensureID(&d.ID); return nil }
func (u *User) BeforeCreate(*gorm.DB) error               { ensureID(&u.ID); return nil }
func (o *Organization) BeforeCreate(*gorm.DB) error       { ensureID(&o.ID); return nil }
func (l *Lesson) BeforeCreate(*gorm.DB) error             { ensureID(&l.ID); return nil }
func (p *LessonPrerequisite) BeforeCreate(*gorm.DB) error { ensureID(&p.ID); return nil }
func (d *Debrief) BeforeCreate(*gorm.DB) error            { ensureID(&d.ID); return nil }
func (i *DebriefItem) BeforeCreate(*gorm.DB) error        { ensureID(&i.ID); return nil }
func (c *Chargeable) BeforeCreate(*gorm.DB) error         { ensureID(&c.ID); return nil }
