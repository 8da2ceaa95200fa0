package dashboard

import "log"

// Notifier recebe os avisos transitórios gerados pelo gateway e pelo
// controller. A lógica produz o resultado; quem exibe é o adapter.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// LogNotifier escreve os avisos no log. É o adapter usado pelo crmctl.
type LogNotifier struct{}

func (LogNotifier) Success(message string) {
	log.Printf("✅ %s", message)
}

func (LogNotifier) Error(message string) {
	log.Printf("⚠️ %s", message)
}

// NopNotifier descarta os avisos. Útil em testes do controller.
type NopNotifier struct{}

func (NopNotifier) Success(string) {}
func (NopNotifier) Error(string)   {}
