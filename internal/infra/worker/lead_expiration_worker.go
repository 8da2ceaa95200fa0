package worker

import (
	"context"
	"database/sql"
	"log"
	"time"
)

// LeadExpirationWorker marca como "lost" os leads que ficaram parados no
// estágio "new" além da janela de inatividade.
type LeadExpirationWorker struct {
	db           *sql.DB
	staleWindow  time.Duration
	tickInterval time.Duration
}

func NewLeadExpirationWorker(db *sql.DB) *LeadExpirationWorker {
	return &LeadExpirationWorker{
		db:           db,
		staleWindow:  30 * 24 * time.Hour, // lead esfria em 30 dias
		tickInterval: 1 * time.Hour,
	}
}

func (w *LeadExpirationWorker) Start(ctx context.Context) {
	log.Println("🕒 Lead Expiration Worker iniciado (janela de 30 dias)")

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.expireStaleLeads(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("⚠️ Lead Expiration Worker encerrado")
			return
		case <-ticker.C:
			w.expireStaleLeads(ctx)
		}
	}
}

func (w *LeadExpirationWorker) expireStaleLeads(ctx context.Context) {
	query := `
		UPDATE leads
		SET
			stage = 'lost',
			updated_at = NOW()
		WHERE
			stage = 'new'
			AND updated_at < NOW() - INTERVAL '30 days'
		RETURNING id, name, updated_at
	`

	rows, err := w.db.QueryContext(ctx, query)
	if err != nil {
		log.Printf("❌ Erro ao buscar leads parados: %v", err)
		return
	}
	defer rows.Close()

	expiredCount := 0
	for rows.Next() {
		var leadID, name string
		var updatedAt time.Time

		if err := rows.Scan(&leadID, &name, &updatedAt); err != nil {
			log.Printf("⚠️ Erro ao escanear lead parado: %v", err)
			continue
		}

		idle := time.Since(updatedAt)
		log.Printf("⏱️ Lead esfriou: lead=%s name=%s idle=%s",
			leadID, name, idle.Round(time.Hour))
		expiredCount++
	}

	if expiredCount > 0 {
		log.Printf("✅ %d lead(s) movidos para 'lost'", expiredCount)
	}
}
