package main

import (
	"context"
	"encoding/json"
	"html/template"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/wneessen/go-mail"

	"github.com/minimart-vn/backoffice/backend/internal/config"
	"github.com/minimart-vn/backoffice/backend/internal/domain"
)

func main() {
	/**********************************************
	 * Tạo logger
	 **********************************************/
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	/**********************************************
	 * Nạp cấu hình
	 **********************************************/
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("không thể nạp cấu hình", slog.String("error", err.Error()))
		return
	}

	/**********************************************
	 * Tạo mail client
	 **********************************************/
	client, err := mail.NewClient(cfg.Email.SMTP.Host,
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithSSL(),
		mail.WithPort(cfg.Email.SMTP.Port),
		mail.WithUsername(cfg.Email.SMTP.Username),
		mail.WithPassword(cfg.Email.SMTP.Password),
	)
	if err != nil {
		logger.Error("không thể tạo mail client", slog.String("error", err.Error()))
		return
	}
	defer client.Close()

	// thử kết nối để chắc chắn SMTP server sẵn sàng
	clientDialCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Email.SMTP.DialTimeout)*time.Second)
	defer cancel()
	if err := client.DialWithContext(clientDialCtx); err != nil {
		logger.Error("không thể kết nối SMTP server", slog.String("error", err.Error()))
		return
	}

	/**********************************************
	 * Kết nối RabbitMQ
	 **********************************************/
	conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
	if err != nil {
		logger.Error("không thể kết nối RabbitMQ", slog.String("error", err.Error()))
		return
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Error("không thể mở channel", slog.String("error", err.Error()))
		return
	}
	defer ch.Close()

	q, err := ch.QueueDeclare(
		"email_queue", // tên queue
		true,          // durable
		false,         // không tự xoá để queue còn đó khi chưa có consumer
		false,         // không exclusive, cho phép nhiều consumer
		false,         // chờ RabbitMQ xác nhận queue đã được tạo
		nil,           // tham số bổ sung
	)
	if err != nil {
		logger.Error("không thể khai báo queue", slog.String("error", err.Error()))
		return
	}

	// bắt CTRL+C
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	msgs, err := ch.Consume(
		q.Name, // queue
		"",     // để RabbitMQ tự cấp consumer tag
		false,  // không auto-ack
		false,  // không exclusive
		false,  // no-local, RabbitMQ không hỗ trợ nên phải là false
		false,  // chờ RabbitMQ phản hồi
		nil,    // tham số bổ sung
	)
	if err != nil {
		logger.Error("không thể consume message", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// context để dừng goroutine khi thoát
	ctx, cancel := context.WithCancel(context.Background())
	wg := sync.WaitGroup{}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case msg := <-msgs:
				logger.Info("nhận được message", slog.String("message", string(msg.Body)))
				mailMessage := domain.MailMessage{}
				if err := json.Unmarshal(msg.Body, &mailMessage); err != nil {
					logger.Error("không thể giải mã message", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}

				// dựng mail
				m := mail.NewMsg()
				if err := m.From(cfg.Email.SMTP.Username); err != nil {
					logger.Error("không thể đặt người gửi", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}
				if err := m.To(mailMessage.To); err != nil {
					logger.Error("không thể đặt người nhận", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}

				// chọn template và tiêu đề theo loại mail
				switch mailMessage.Type {
				case "create_staff":
					tmpl, err := template.ParseFiles("./templates/new_account_email.html")
					if err != nil {
						logger.Error("không thể nạp template", slog.String("error", err.Error()))
						_ = msg.Nack(false, false)
						continue
					}
					if err := m.SetBodyHTMLTemplate(tmpl, mailMessage.Data); err != nil {
						logger.Error("không thể dựng nội dung mail", slog.String("error", err.Error()))
						_ = msg.Nack(false, false)
						continue
					}
					m.Subject("MiniMart - Thông tin tài khoản")
				case "reset_password":
					tmpl, err := template.ParseFiles("./templates/reset_password_otp_email.html")
					if err != nil {
						logger.Error("không thể nạp template", slog.String("error", err.Error()))
						_ = msg.Nack(false, false)
						continue
					}
					if err := m.SetBodyHTMLTemplate(tmpl, mailMessage.Data); err != nil {
						logger.Error("không thể dựng nội dung mail", slog.String("error", err.Error()))
						_ = msg.Nack(false, false)
						continue
					}
					m.Subject("MiniMart - Đặt lại mật khẩu")
				case "change_email":
					tmpl, err := template.ParseFiles("./templates/change_email_otp_email.html")
					if err != nil {
						logger.Error("không thể nạp template", slog.String("error", err.Error()))
						_ = msg.Nack(false, false)
						continue
					}
					if err := m.SetBodyHTMLTemplate(tmpl, mailMessage.Data); err != nil {
						logger.Error("không thể dựng nội dung mail", slog.String("error", err.Error()))
						_ = msg.Nack(false, false)
						continue
					}
					m.Subject("MiniMart - Xác nhận đổi email")
				case "assignment_created":
					tmpl, err := template.ParseFiles("./templates/assignment_email.html")
					if err != nil {
						logger.Error("không thể nạp template", slog.String("error", err.Error()))
						_ = msg.Nack(false, false)
						continue
					}
					if err := m.SetBodyHTMLTemplate(tmpl, mailMessage.Data); err != nil {
						logger.Error("không thể dựng nội dung mail", slog.String("error", err.Error()))
						_ = msg.Nack(false, false)
						continue
					}
					m.Subject("MiniMart - Lịch làm việc mới")
				default:
					logger.Error("loại mail không được hỗ trợ", slog.String("type", mailMessage.Type))
					_ = msg.Nack(false, false)
					continue
				}

				// gửi mail
				if err := client.DialAndSend(m); err != nil {
					logger.Error("gửi mail thất bại", slog.String("error", err.Error()))
					_ = msg.Nack(false, true) // đưa message trở lại queue
					continue
				}

				_ = msg.Ack(false)
			}
		}
	}()

	logger.Info("đang chờ message... (CTRL+C để thoát)")
	<-sigChan

	slog.Info("đang tắt mail worker...")
	cancel()
	wg.Wait()
	slog.Info("mail worker đã tắt thành công")
}
