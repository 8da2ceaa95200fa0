package queue

import (
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

// NotificationSender define o contrato do envio de email (gomail em produção)
type NotificationSender interface {
	SendLeadAssigned(to, toName, leadName, leadEmail, source string) error
	SendPortalInvite(to, toName, companyName string) error
}

type Worker struct {
	Channel *amqp.Channel
	Sender  NotificationSender
}

func NewWorker(ch *amqp.Channel, sender NotificationSender) *Worker {
	return &Worker{
		Channel: ch,
		Sender:  sender,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName, // fila
		"",        // consumer
		false,     // auto-ack (manual é mais seguro)
		false,     // exclusive
		false,     // no-local
		false,     // no-wait
		nil,       // args
	)
	if err != nil {
		log.Fatalf("❌ Falha ao registrar consumidor RabbitMQ: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload NotificationPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("❌ [WORKER] JSON Inválido: %s", err)
				// Mensagem malformada: rejeita sem requeue para não travar a fila
				d.Nack(false, false)
				continue
			}

			log.Printf("⚙️ [WORKER] Notificação %s para %s", payload.Kind, payload.To)

			if err := w.processMessage(payload); err != nil {
				log.Printf("❌ [WORKER] Falha no envio: %s", err)
				d.Nack(false, false) // vai pra DLQ
			} else {
				d.Ack(false)
			}
		}
	}()

	log.Printf(" [*] Worker rodando e aguardando na fila '%s'", queueName)
	<-forever
}

func (w *Worker) processMessage(payload NotificationPayload) error {
	switch payload.Kind {
	case NotificationLeadAssigned:
		return w.Sender.SendLeadAssigned(payload.To, payload.ToName,
			payload.LeadName, payload.LeadEmail, payload.Source)

	case NotificationPortalInvite:
		return w.Sender.SendPortalInvite(payload.To, payload.ToName, payload.CompanyName)

	default:
		// tipo desconhecido: dá ACK e segue, não sabemos tratar
		log.Printf("⚠️ Notificação desconhecida: %s. Apenas logando.", payload.Kind)
		return nil
	}
}
