package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"

	"qrasset-http-service/config"
)

// RedisService Redis 캐시 연동 서비스
type RedisService struct {
	Client *redis.Client
	Ctx    context.Context
}

// NewRedisService 새 Redis 서비스 생성
func NewRedisService(cfg *config.Config) *RedisService {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: "", // 비밀번호 미설정
		DB:       cfg.RedisDB,
	})

	ctx := context.Background()

	return &RedisService{
		Client: client,
		Ctx:    ctx,
	}
}

// Ping 연결 상태 확인
func (s *RedisService) Ping() error {
	return s.Client.Ping(s.Ctx).Err()
}

// Set 만료 시간과 함께 키-값 저장
func (s *RedisService) Set(key string, value interface{}, expiration time.Duration) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return s.Client.Set(s.Ctx, key, jsonValue, expiration).Err()
}

// Get 키로 값 조회
func (s *RedisService) Get(key string, dest interface{}) error {
	val, err := s.Client.Get(s.Ctx, key).Result()
	if err != nil {
		return err
	}

	return json.Unmarshal([]byte(val), dest)
}

// Delete 키 삭제
func (s *RedisService) Delete(key string) error {
	return s.Client.Del(s.Ctx, key).Err()
}

// CacheDashboardStats 대시보드 통계 캐시 저장
func (s *RedisService) CacheDashboardStats(userID string, stats interface{}, expiration time.Duration) error {
	return s.Set("dashboard_stats:"+userID, stats, expiration)
}

// GetDashboardStats 대시보드 통계 캐시 조회
func (s *RedisService) GetDashboardStats(userID string, dest interface{}) error {
	return s.Get("dashboard_stats:"+userID, dest)
}

// InvalidateDashboardStats 대시보드 통계 캐시 무효화
func (s *RedisService) InvalidateDashboardStats(userID string) error {
	return s.Delete("dashboard_stats:" + userID)
}
