package models

import (
	"time"

	"gorm.io/gorm"
)

// DayLayout формат QueueDay.Day.
const DayLayout = "2006-01-02"

// QueueDay все записи очереди одной клиники за один день.
type QueueDay struct {
	gorm.Model
	ClinicID string       `gorm:"uniqueIndex:idx_queue_day_clinic_day;size:36;not null"`
	DoctorID string       `gorm:"index;size:36;not null"`
	Day      string       `gorm:"uniqueIndex:idx_queue_day_clinic_day;size:10;not null"` // Ключ дня, например "2026-10-17"
	Date     time.Time    `gorm:"index;not null"`                                       // Полночь дня в часовом поясе клиники
	IsActive bool         `gorm:"index;default:true"`
	Version  int64        `gorm:"not null;default:0"`
	Entries  []QueueEntry `gorm:"foreignKey:QueueDayID;constraint:OnDelete:CASCADE"`
}

// Entry запись с данным id или nil.
func (d *QueueDay) Entry(id string) *QueueEntry {
	for i := range d.Entries {
		if d.Entries[i].ID == id {
			return &d.Entries[i]
		}
	}
	return nil
}

// ActiveEntryFor ожидающая или идущая запись пациента, или nil.
func (d *QueueDay) ActiveEntryFor(patientID string) *QueueEntry {
	for i := range d.Entries {
		if d.Entries[i].PatientID == patientID && d.Entries[i].Status.Active() {
			return &d.Entries[i]
		}
	}
	return nil
}

// InConsultation запись, которая сейчас на приёме, или nil.
func (d *QueueDay) InConsultation() *QueueEntry {
	for i := range d.Entries {
		if d.Entries[i].Status == StatusInConsultation {
			return &d.Entries[i]
		}
	}
	return nil
}

// Clone глубокая копия дня вместе с записями.
func (d *QueueDay) Clone() *QueueDay {
	if d == nil {
		return nil
	}
	c := *d
	if d.Entries != nil {
		c.Entries = make([]QueueEntry, len(d.Entries))
		copy(c.Entries, d.Entries)
	}
	return &c
}
