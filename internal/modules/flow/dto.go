package flow

import "astroconsult/internal/domain"

type SelectOfferingRequest struct {
	OfferingID string `json:"offering_id" binding:"required"`
}

type SelectDateRequest struct {
	Date string `json:"date" binding:"required"`
}

type SelectTimeRequest struct {
	Time string `json:"time" binding:"required"`
}

type EnterDetailsRequest struct {
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required"`
	Phone     string `json:"phone" validate:"required"`
	Topic     string `json:"topic"`
	Questions string `json:"questions"`
}

type SessionResponse struct {
	SessionID string           `json:"session_id"`
	Step      string           `json:"step"`
	StepTitle string           `json:"step_title"`
	Selection domain.Selection `json:"selection"`
}

func toSessionResponse(sess *Session) SessionResponse {
	return SessionResponse{
		SessionID: sess.ID,
		Step:      sess.Step.String(),
		StepTitle: sess.Step.Title(),
		Selection: sess.Selection,
	}
}
