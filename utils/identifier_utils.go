package utils

import "regexp"

// 표준 UUID 텍스트 패턴 (8-4-4-4-12 16진수 그룹, 대소문자 무시)
var uuidPattern = regexp.MustCompile(`(?i)^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// IsUUID 식별자가 UUID 형식인지 판별한다.
// 장비 식별자는 UUID이면 내부 ID로, 아니면 자산번호로 해석된다.
func IsUUID(identifier string) bool {
	return uuidPattern.MatchString(identifier)
}
