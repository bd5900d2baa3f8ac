package cron

import (
	"time"

	"github.com/flowhire/scheduling-backend-go/internal/domain/appointment"
)

type AppointmentJobs struct {
	appointmentService appointment.Service
	sweepInterval      time.Duration
}

func NewAppointmentJobs(appointmentService appointment.Service, sweepInterval time.Duration) *AppointmentJobs {
	return &AppointmentJobs{
		appointmentService: appointmentService,
		sweepInterval:      sweepInterval,
	}
}

func (j *AppointmentJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("sweep_overdue_appointments", j.sweepInterval, j.appointmentService.SweepOverdue)
	scheduler.AddJob("send_feedback_reminders", 1*time.Hour, j.appointmentService.SendFeedbackReminders)
}
