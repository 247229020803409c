package mailer

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

func newTestMailer(send func(*gomail.Message) error, timeout time.Duration) *SMTPMailer {
	m := NewSMTP(SMTPConfig{Host: "localhost", Port: 25, From: "a@b.c", Timeout: timeout}, zap.NewNop())
	m.send = send
	return m
}

func TestSMTPRetriesOnce(t *testing.T) {
	calls := 0
	m := newTestMailer(func(*gomail.Message) error {
		calls++
		if calls == 1 {
			return errors.New("connection reset")
		}
		return nil
	}, time.Second)

	if err := m.Send(context.Background(), Message{To: "x@y.z", Subject: "s"}); err != nil {
		t.Fatalf("second attempt should succeed: %v", err)
	}
	if calls != 2 {
		t.Errorf("calls = %d", calls)
	}
}

func TestSMTPGivesUpAfterTwoAttempts(t *testing.T) {
	calls := 0
	m := newTestMailer(func(*gomail.Message) error {
		calls++
		return errors.New("down")
	}, time.Second)

	if err := m.Send(context.Background(), Message{To: "x@y.z"}); err == nil {
		t.Fatal("expected error")
	}
	if calls != attempts {
		t.Errorf("calls = %d", calls)
	}
}

func TestSMTPAttemptTimesOut(t *testing.T) {
	block := make(chan struct{})
	defer close(block)

	m := newTestMailer(func(*gomail.Message) error {
		<-block
		return nil
	}, 10*time.Millisecond)

	start := time.Now()
	err := m.Send(context.Background(), Message{To: "x@y.z"})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline, got %v", err)
	}
	if time.Since(start) > time.Second {
		t.Error("send was not bounded by the timeout")
	}
}

func TestSMTPDialsConfiguredServer(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	port := ln.Addr().(*net.TCPAddr).Port
	ln.Close()

	m := NewSMTP(SMTPConfig{Host: "127.0.0.1", Port: port, From: "a@b.c", Timeout: 2 * time.Second}, zap.NewNop())
	if err := m.Send(context.Background(), Message{To: "x@y.z", Subject: "s"}); err == nil {
		t.Fatal("expected a dial error from a closed port")
	}
}
