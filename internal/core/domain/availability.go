package domain

import "github.com/google/uuid"

type AvailabilityQuery struct {
	HallID           uuid.UUID   `json:"hall_id"`
	StartDate        Date        `json:"start_date"`
	EndDate          Date        `json:"end_date"`
	EventTime        EventTime   `json:"event_time"`
	SectionIDs       []uuid.UUID `json:"section_ids"`
	ExcludeBookingID *uuid.UUID  `json:"exclude_booking_id,omitempty"`
}

// Complete reports whether every input the overlap check needs is set.
func (q AvailabilityQuery) Complete() bool {
	return q.HallID != uuid.Nil &&
		!q.StartDate.IsZero() &&
		!q.EndDate.IsZero() &&
		q.EventTime != "" &&
		len(q.SectionIDs) > 0
}

func (q AvailabilityQuery) Equal(o AvailabilityQuery) bool {
	if q.HallID != o.HallID || !q.StartDate.Equal(o.StartDate) || !q.EndDate.Equal(o.EndDate) || q.EventTime != o.EventTime {
		return false
	}
	if (q.ExcludeBookingID == nil) != (o.ExcludeBookingID == nil) {
		return false
	}
	if q.ExcludeBookingID != nil && *q.ExcludeBookingID != *o.ExcludeBookingID {
		return false
	}
	if len(q.SectionIDs) != len(o.SectionIDs) {
		return false
	}
	for i := range q.SectionIDs {
		if q.SectionIDs[i] != o.SectionIDs[i] {
			return false
		}
	}
	return true
}

func QueryFromInfo(info BookingInfo, exclude *uuid.UUID) AvailabilityQuery {
	return AvailabilityQuery{
		HallID:           info.HallID,
		StartDate:        info.StartDate,
		EndDate:          info.EndDate,
		EventTime:        info.EventTime,
		SectionIDs:       append([]uuid.UUID(nil), info.SectionIDs...),
		ExcludeBookingID: exclude,
	}
}

type AvailabilityResult struct {
	Query     AvailabilityQuery `json:"query"`
	Available bool              `json:"available"`
	Conflict  *BookingRef       `json:"conflict,omitempty"`
}
