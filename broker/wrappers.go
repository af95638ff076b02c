package broker

import (
	"errors"

	"talentbridge.com/dto"
)

func GetStudentById(id string) (*dto.StudentResponse, error) {
	if conn == nil {
		return nil, nil
	}

	var m dto.StudentResponse
	err := sendAndRecieve("get-student", id, &m)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func SendTransitionNotification(dto *dto.TransitionNotificationDTO) error {
	return sendReliable("workspace-notifications", dto)
}

func SendWaitlistWelcome(dto *dto.WaitlistWelcomeDTO) error {
	return sendReliable("waitlist-welcome", dto)
}

func SendMessagingDigest(dto *dto.MessagingDigestDTO) error {
	if conn == nil {
		return nil
	}

	var m *string
	err := sendAndRecieve("messaging-digest", dto, &m)
	if err != nil {
		return err
	}

	if m == nil || *m == "null" {
		return nil
	}

	return errors.New(*m)
}
