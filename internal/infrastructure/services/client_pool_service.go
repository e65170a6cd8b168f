package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/replicate/replicate-go"
	"google.golang.org/genai"

	"github.com/harikrishnad1997/FLUX-1-Finetuning/internal/domain/repositories"
)

// GenAI Client Pool実装
type genAIClientPool struct {
	config *repositories.AIClientConfig
	client *genai.Client
	mutex  sync.RWMutex
}

// 新しいGenAIクライアントプールを作成
func newGenAIClientPool(config *repositories.AIClientConfig) repositories.GenAIClientPool {
	return &genAIClientPool{
		config: config,
	}
}

func (p *genAIClientPool) GetGenAIClient(ctx context.Context) (*genai.Client, error) {
	p.mutex.RLock()
	if p.client != nil {
		defer p.mutex.RUnlock()
		return p.client, nil
	}
	p.mutex.RUnlock()

	p.mutex.Lock()
	defer p.mutex.Unlock()

	// ダブルチェックロッキング
	if p.client != nil {
		return p.client, nil
	}

	if p.config.GeminiAPIKey == "" {
		return nil, errors.New("gemini API key is empty")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  p.config.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	p.client = client
	return p.client, nil
}

func (p *genAIClientPool) Close() error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	// GenAI Clientはリソースクリーンアップ不要
	p.client = nil
	return nil
}

// Replicate Client Pool実装
type replicateClientPool struct {
	config *repositories.AIClientConfig
	client *replicate.Client
	mutex  sync.RWMutex
}

func newReplicateClientPool(config *repositories.AIClientConfig) repositories.ReplicateClientPool {
	return &replicateClientPool{
		config: config,
	}
}

func (p *replicateClientPool) GetReplicateClient(ctx context.Context) (*replicate.Client, error) {
	p.mutex.RLock()
	if p.client != nil {
		defer p.mutex.RUnlock()
		return p.client, nil
	}
	p.mutex.RUnlock()

	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.client != nil {
		return p.client, nil
	}

	if p.config.ReplicateAPIToken == "" {
		return nil, errors.New("replicate API token is empty")
	}

	client, err := replicate.NewClient(replicate.WithToken(p.config.ReplicateAPIToken))
	if err != nil {
		return nil, fmt.Errorf("failed to create Replicate client: %w", err)
	}

	p.client = client
	return p.client, nil
}

func (p *replicateClientPool) Close() error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.client = nil
	return nil
}

// Client Pool Service実装
type clientPoolService struct {
	config        *repositories.AIClientConfig
	genAIPool     repositories.GenAIClientPool
	replicatePool repositories.ReplicateClientPool
}

// 新しいClient Pool Serviceを作成
func NewClientPoolService(geminiAPIKey, replicateAPIToken string) repositories.ClientPoolService {
	config := &repositories.AIClientConfig{
		GeminiAPIKey:      geminiAPIKey,
		ReplicateAPIToken: replicateAPIToken,
	}

	return &clientPoolService{
		config:        config,
		genAIPool:     newGenAIClientPool(config),
		replicatePool: newReplicateClientPool(config),
	}
}

func (s *clientPoolService) GenAIPool() repositories.GenAIClientPool {
	return s.genAIPool
}

func (s *clientPoolService) ReplicatePool() repositories.ReplicateClientPool {
	return s.replicatePool
}

func (s *clientPoolService) Config() *repositories.AIClientConfig {
	return s.config
}

func (s *clientPoolService) Close() error {
	var errs []error

	if err := s.genAIPool.Close(); err != nil {
		errs = append(errs, fmt.Errorf("GenAI pool close error: %w", err))
	}

	if err := s.replicatePool.Close(); err != nil {
		errs = append(errs, fmt.Errorf("Replicate pool close error: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("client pool close errors: %w", errors.Join(errs...))
	}

	return nil
}
