package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/business-dashboard-api/internal/config"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const versionKeyPrefix = "dashboard:version"

// Cache guarda painéis calculados no Redis, versionados por dono.
// Um *Cache nil é válido e apenas repassa para o loader.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New conecta no Redis configurado. Sem endereço retorna nil, sem erro.
func New(ctx context.Context, cfg config.Redis) (*Cache, error) {
	if cfg.Addr == "" {
		logrus.Info("Redis não configurado, cache do painel desabilitado")
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("cache: ping: %w", err)
	}

	return NewWithClient(client, cfg.CacheTTL), nil
}

func NewWithClient(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

func versionKey(ownerID int) string {
	return versionKeyPrefix + ":" + strconv.Itoa(ownerID)
}

// Version retorna a versão atual do cache do dono, inicializando quando ausente
func (c *Cache) Version(ctx context.Context, ownerID int) (int64, error) {
	if c == nil || c.client == nil {
		return 0, nil
	}

	key := versionKey(ownerID)
	ver, err := c.client.Get(ctx, key).Int64()
	if errors.Is(err, redis.Nil) {
		// SetNX evita sobrescrever um Bump concorrente
		if err := c.client.SetNX(ctx, key, 1, 0).Err(); err != nil {
			return 0, err
		}
		return c.client.Get(ctx, key).Int64()
	}
	if err != nil {
		return 0, err
	}

	return ver, nil
}

// BuildKey monta a chave com o dono, as partes e a versão atual
func (c *Cache) BuildKey(ctx context.Context, ownerID int, parts ...string) (string, error) {
	joined := strings.Join(append([]string{"dashboard", strconv.Itoa(ownerID)}, parts...), ":")
	if c == nil || c.client == nil {
		return joined, nil
	}

	ver, err := c.Version(ctx, ownerID)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s:%d", joined, ver), nil
}

// FetchJSON lê o valor da chave ou o popula com o loader
func (c *Cache) FetchJSON(ctx context.Context, key string, dest any, loader func(context.Context) (any, error)) error {
	if loader == nil {
		return errors.New("cache: loader obrigatório")
	}

	if c == nil || c.client == nil {
		value, err := loader(ctx)
		if err != nil {
			return err
		}
		raw, err := json.Marshal(value)
		if err != nil {
			return err
		}
		return json.Unmarshal(raw, dest)
	}

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		return json.Unmarshal(payload, dest)
	}
	if !errors.Is(err, redis.Nil) {
		return err
	}

	value, err := loader(ctx)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		logrus.WithFields(logrus.Fields{
			"key":   key,
			"error": err.Error(),
		}).Warn("Erro ao gravar painel no cache")
	}

	return json.Unmarshal(raw, dest)
}

// Bump invalida os painéis do dono incrementando a versão
func (c *Cache) Bump(ctx context.Context, ownerID int) error {
	if c == nil || c.client == nil {
		return nil
	}

	return c.client.Incr(ctx, versionKey(ownerID)).Err()
}

func (c *Cache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
