package notify

import (
	"bufio"
	"context"
	"encoding/base64"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiyasha05/Dental-Art-api/internal/config"
	"github.com/tiyasha05/Dental-Art-api/internal/models"
)

// -----------------------------------------------------------------------------
// Mock SMTP Server for Local Testing
// -----------------------------------------------------------------------------

type mockSMTPServer struct {
	listener   net.Listener
	rejectAuth bool
	silent     bool
	received   chan string

	mu    sync.Mutex
	conns []net.Conn
}

func newMockSMTPServer(t *testing.T, opts ...func(*mockSMTPServer)) *mockSMTPServer {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	s := &mockSMTPServer{
		listener: ln,
		received: make(chan string, 10),
	}
	for _, opt := range opts {
		opt(s)
	}
	go s.listenAndServe()
	t.Cleanup(s.stop)
	return s
}

func (s *mockSMTPServer) port() int {
	return s.listener.Addr().(*net.TCPAddr).Port
}

func (s *mockSMTPServer) listenAndServe() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			return
		}
		s.mu.Lock()
		s.conns = append(s.conns, conn)
		s.mu.Unlock()
		if s.silent {
			continue
		}
		go s.handleConnection(conn)
	}
}

func (s *mockSMTPServer) handleConnection(conn net.Conn) {
	defer conn.Close()

	conn.Write([]byte("220 mock.smtp.server Service Ready\r\n"))

	scanner := bufio.NewScanner(conn)
	var builder strings.Builder
	inData := false

	for scanner.Scan() {
		line := scanner.Text()
		builder.WriteString(line + "\n")

		if inData {
			if line == "." {
				inData = false
				conn.Write([]byte("250 OK: queued as 12345\r\n"))
			}
			continue
		}

		switch {
		case strings.HasPrefix(line, "EHLO"), strings.HasPrefix(line, "HELO"):
			conn.Write([]byte("250-mock.smtp.server Hello\r\n250 AUTH LOGIN PLAIN\r\n"))
		case strings.HasPrefix(line, "AUTH"):
			if s.rejectAuth {
				conn.Write([]byte("535 Authentication credentials invalid\r\n"))
			} else {
				conn.Write([]byte("235 Authentication succeeded\r\n"))
			}
		case strings.HasPrefix(line, "MAIL FROM:"), strings.HasPrefix(line, "RCPT TO:"):
			conn.Write([]byte("250 OK\r\n"))
		case strings.HasPrefix(line, "DATA"):
			inData = true
			conn.Write([]byte("354 End data with <CR><LF>.<CR><LF>\r\n"))
		case strings.HasPrefix(line, "QUIT"):
			conn.Write([]byte("221 Bye\r\n"))
			s.received <- builder.String()
			return
		default:
			conn.Write([]byte("250 OK\r\n"))
		}
	}

	s.received <- builder.String()
}

func (s *mockSMTPServer) wait(t *testing.T) string {
	t.Helper()
	select {
	case msg := <-s.received:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("Mock SMTP server did not receive any messages")
		return ""
	}
}

func (s *mockSMTPServer) stop() {
	s.listener.Close()
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.conns {
		c.Close()
	}
}

func smtpConfig(port int) config.SMTPConfig {
	return config.SMTPConfig{
		Host:     "127.0.0.1",
		Port:     port,
		Username: "clinic@example.com",
		Password: "password",
	}
}

// -----------------------------------------------------------------------------
// Tests for SMTPSender
// -----------------------------------------------------------------------------

func TestSMTPSender_Send(t *testing.T) {
	server := newMockSMTPServer(t)
	sender := NewSMTPSender(smtpConfig(server.port()))

	err := sender.Send(context.Background(), models.Notification{
		From:    "Appointments <appointments@example.com>",
		To:      "staff@example.com",
		Subject: "New Appointment Booking",
		HTML:    "<p>Asha booked a cleaning</p>",
		Attachment: &models.Attachment{
			Filename:    "appointment.xlsx",
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Content:     []byte("This is a test attachment."),
		},
	})
	require.NoError(t, err)

	emailContent := server.wait(t)
	assert.Contains(t, emailContent, "AUTH PLAIN")
	assert.Contains(t, emailContent, "MAIL FROM:<appointments@example.com>")
	assert.Contains(t, emailContent, "RCPT TO:<staff@example.com>")
	assert.Contains(t, emailContent, "To: staff@example.com")
	assert.Contains(t, emailContent, "Subject: New Appointment Booking")
	assert.Contains(t, emailContent, "Asha booked a cleaning")
	assert.Contains(t, emailContent, "Content-Type: application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	assert.Contains(t, emailContent, `Content-Disposition: attachment; filename="appointment.xlsx"`)
	assert.Contains(t, emailContent, base64.StdEncoding.EncodeToString([]byte("This is a test attachment.")))
}

func TestSMTPSender_SendWithoutAttachment(t *testing.T) {
	server := newMockSMTPServer(t)
	sender := NewSMTPSender(smtpConfig(server.port()))

	err := sender.Send(context.Background(), models.Notification{
		From:    "Contacts <info@example.com>",
		To:      "staff@example.com",
		Subject: "New Contact Form Submission",
		HTML:    "<p>hi</p>",
	})
	require.NoError(t, err)

	emailContent := server.wait(t)
	assert.Contains(t, emailContent, "Subject: New Contact Form Submission")
	assert.NotContains(t, emailContent, "Content-Disposition: attachment")
}

func TestSMTPSender_AuthRejected(t *testing.T) {
	server := newMockSMTPServer(t, func(s *mockSMTPServer) { s.rejectAuth = true })
	sender := NewSMTPSender(smtpConfig(server.port()))

	err := sender.Send(context.Background(), models.Notification{
		From: "info@example.com", To: "staff@example.com", Subject: "x", HTML: "x",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to send email")
}

func TestSMTPSender_ConnectionRefused(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	ln.Close()

	sender := NewSMTPSender(smtpConfig(port))
	err = sender.Send(context.Background(), models.Notification{
		From: "info@example.com", To: "staff@example.com", Subject: "x", HTML: "x",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to send email")
}

func TestSMTPSender_ContextDeadline(t *testing.T) {
	server := newMockSMTPServer(t, func(s *mockSMTPServer) { s.silent = true })
	sender := NewSMTPSender(smtpConfig(server.port()))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := sender.Send(ctx, models.Notification{
		From: "info@example.com", To: "staff@example.com", Subject: "x", HTML: "x",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

func TestBuildMessage_Validation(t *testing.T) {
	_, err := buildMessage(models.Notification{From: "info@example.com"})
	assert.EqualError(t, err, "recipient is required")

	_, err = buildMessage(models.Notification{
		From: "info@example.com",
		To:   "staff@example.com",
		Attachment: &models.Attachment{
			Filename: "appointment.xlsx",
			Content:  make([]byte, maxAttachmentSize+1),
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "attachment size exceeds the limit")
}
