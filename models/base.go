package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// JSONMap JSON 컬럼에 매핑되는 임의 구조 메타데이터
type JSONMap map[string]interface{}

// Value GORM이 JSON 컬럼에 기록할 때 호출
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan GORM이 JSON 컬럼을 읽을 때 호출
func (m *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*m = JSONMap{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("unsupported type for JSONMap")
	}
	if len(data) == 0 {
		*m = JSONMap{}
		return nil
	}
	return json.Unmarshal(data, m)
}
