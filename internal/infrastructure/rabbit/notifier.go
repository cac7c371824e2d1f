package rabbit

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/jhoicas/tienda-api/internal/application/stock"
	"github.com/jhoicas/tienda-api/pkg/logger"
)

var _ stock.LowStockNotifier = (*LowStockPublisher)(nil)

// LowStockPublisher publica alertas de stock bajo en una cola RabbitMQ.
// Es best-effort: los fallos se loguean y nunca se propagan al movimiento.
type LowStockPublisher struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
	log   *logger.Logger
}

// NewLowStockPublisher conecta a RabbitMQ y declara la cola (durable).
func NewLowStockPublisher(url, queue string, log *logger.Logger) (*LowStockPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbit dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("rabbit channel: %w", err)
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare queue %s: %w", queue, err)
	}
	return &LowStockPublisher{conn: conn, ch: ch, queue: queue, log: log}, nil
}

// NotifyLowStock publica la alerta como JSON en la cola.
func (p *LowStockPublisher) NotifyLowStock(ctx context.Context, alert stock.LowStockAlert) error {
	body, err := json.Marshal(alert)
	if err != nil {
		return err
	}
	err = p.ch.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
	if err != nil {
		p.log.Error().Err(err).
			Str("product_id", alert.ProductID).
			Msg("publicar alerta de stock bajo")
		return err
	}
	p.log.Info().
		Str("product_id", alert.ProductID).
		Int("quantity", alert.Quantity).
		Int("threshold", alert.Threshold).
		Msg("alerta de stock bajo publicada")
	return nil
}

// Close cierra canal y conexión.
func (p *LowStockPublisher) Close() {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}

var _ stock.LowStockNotifier = (*LogNotifier)(nil)

// LogNotifier fallback cuando RabbitMQ no está configurado: la alerta solo
// queda en el log estructurado.
type LogNotifier struct {
	log *logger.Logger
}

// NewLogNotifier construye el notificador de log.
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

// NotifyLowStock escribe la alerta en el log.
func (n *LogNotifier) NotifyLowStock(_ context.Context, alert stock.LowStockAlert) error {
	n.log.Warn().
		Str("product_id", alert.ProductID).
		Str("product", alert.ProductName).
		Int("quantity", alert.Quantity).
		Int("threshold", alert.Threshold).
		Msg("stock bajo")
	return nil
}
