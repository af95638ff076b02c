package broker

import (
	"encoding/json"
	"errors"
	"os"
	"time"

	"talentbridge.com/db"
	"talentbridge.com/dto"
	"talentbridge.com/types"

	"github.com/go-stomp/stomp/v3"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

var conn *stomp.Conn

// Connect dials the STOMP broker. A missing host leaves conn nil; every send
// wrapper treats a nil conn as a no-op so the service can run broker-less in
// local development.
func Connect(network string, addr string) {
	if addr == "" {
		log.Warn("Message broker host not configured, notifications disabled")
		return
	}

	var err error
	conn, err = stomp.Dial(network, addr,
		stomp.ConnOpt.Login(os.Getenv("MESSAGE_BROKER_USER"), os.Getenv("MESSAGE_BROKER_PASSWORD")),
		stomp.ConnOpt.HeartBeat(10*time.Second, 10*time.Second),
	)
	if err != nil {
		log.Errorf("Failed to connect to message broker: %v", err)
		conn = nil
	}
}

func sendReliable(destination string, payload interface{}) error {
	if conn == nil {
		return nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return conn.Send("/queue/"+destination, "application/json", body, stomp.SendOpt.Receipt)
}

func sendAndRecieve(destination string, payload interface{}, out interface{}) error {
	if conn == nil {
		return nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	replyDest := "/temp-queue/" + destination + "-" + uuid.NewString()
	sub, err := conn.Subscribe(replyDest, stomp.AckAuto)
	if err != nil {
		return err
	}
	defer sub.Unsubscribe()

	err = conn.Send("/queue/"+destination, "application/json", body,
		stomp.SendOpt.Header("reply-to", replyDest))
	if err != nil {
		return err
	}

	select {
	case msg := <-sub.C:
		if msg.Err != nil {
			return msg.Err
		}
		return json.Unmarshal(msg.Body, out)
	case <-time.After(10 * time.Second):
		return errors.New("timeout waiting for broker reply on " + destination)
	}
}

// StartListeners subscribes to events the platform user service publishes.
// Currently only student block/unblock events, which are mirrored into the
// local blocked_students table consulted by the workspace gate.
func StartListeners() {
	if conn == nil {
		return
	}

	go listenStudentBlocks()
}

func listenStudentBlocks() {
	sub, err := conn.Subscribe("/queue/student-blocked", stomp.AckAuto)
	if err != nil {
		log.Errorf("Failed to subscribe to student-blocked: %v", err)
		return
	}

	for msg := range sub.C {
		if msg.Err != nil {
			log.Errorf("student-blocked listener error: %v", msg.Err)
			continue
		}

		var block dto.StudentBlockDTO
		if err := json.Unmarshal(msg.Body, &block); err != nil {
			log.Errorf("Failed to parse student-blocked payload: %v", err)
			continue
		}

		record := types.BlockedStudent{
			UserID:    block.UserID,
			Reason:    block.Reason,
			BlockedBy: block.BlockedBy,
		}
		var existing types.BlockedStudent
		if err := db.DB.Where("user_id = ?", block.UserID).First(&existing).Error; err == nil {
			continue
		}
		if err := db.DB.Create(&record).Error; err != nil {
			log.Errorf("Failed to store blocked student %s: %v", block.UserID, err)
		} else {
			log.Infof("Student %s blocked via user service event", block.UserID)
		}
	}
}
