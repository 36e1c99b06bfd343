package mqtt

import (
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"

	"github.com/massimodamico86-art/bizscreen-sub004/internal/config"
)

// RefreshPublisher 向播放端发布 refresh 提示
// 只提示"状态有变化，尽快重新轮询"，不承载内容载荷；
// 解析结果仍然只通过轮询接口下发
type RefreshPublisher struct {
	client mqtt.Client
	qos    byte
	logger *zap.Logger
}

// NewRefreshPublisher 创建并连接 MQTT 发布器
func NewRefreshPublisher(cfg *config.MQTTConfig, logger *zap.Logger) (*RefreshPublisher, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.Broker)
	opts.SetClientID(cfg.ClientID)

	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}
	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}

	opts.SetAutoReconnect(true)
	opts.SetCleanSession(true)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}

	return &RefreshPublisher{
		client: client,
		qos:    cfg.QoS,
		logger: logger,
	}, nil
}

type refreshMessage struct {
	Reason    string `json:"reason"`
	Timestamp int64  `json:"timestamp"`
}

// PublishRefresh 实现 service.RefreshNotifier
// 主题：signage/{tenant_id}/refresh
func (p *RefreshPublisher) PublishRefresh(tenantID, reason string) {
	payload, err := json.Marshal(refreshMessage{
		Reason:    reason,
		Timestamp: time.Now().Unix(),
	})
	if err != nil {
		p.logger.Error("failed to marshal refresh message", zap.Error(err))
		return
	}

	topic := "signage/" + tenantID + "/refresh"
	token := p.client.Publish(topic, p.qos, false, payload)
	if token.Wait() && token.Error() != nil {
		p.logger.Error("failed to publish refresh message",
			zap.String("topic", topic),
			zap.Error(token.Error()),
		)
		return
	}
	p.logger.Debug("refresh message published",
		zap.String("topic", topic),
		zap.String("reason", reason),
	)
}

// Close 断开 MQTT 连接
func (p *RefreshPublisher) Close() {
	p.client.Disconnect(250)
}
