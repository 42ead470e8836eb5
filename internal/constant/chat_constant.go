package constant

// User-facing messages returned in error envelopes and acknowledgements.
const (
	MessageEmptyInput        = "메시지를 입력해주세요."
	MessageTransportFailure  = "API 요청 중 오류가 발생했습니다. 잠시 후 다시 시도해주세요."
	MessageMalformedResponse = "API 응답을 처리하는 중 오류가 발생했습니다."
	MessageServerError       = "서버 오류가 발생했습니다. 잠시 후 다시 시도해주세요."
	MessageNotFound          = "대화를 찾을 수 없습니다."
	MessageLimitExceeded     = "오늘의 질문 한도를 초과했습니다. 내일 다시 시도해주세요."
	MessageSettingsFailure   = "설정 저장 중 오류가 발생했습니다."

	MessageConversationCleared = "대화 기록이 초기화되었습니다."
	MessageSettingsSaved       = "설정이 저장되었습니다."
	MessageConversationCreated = "새 대화가 시작되었습니다."
	MessageConversationDeleted = "대화가 삭제되었습니다."
)

const (
	// ConversationTitleMaxRunes bounds titles derived from the first question.
	ConversationTitleMaxRunes = 50

	DefaultPageSize = 20
	MaxPageSize     = 100

	// UserHandleCookie carries the signed per-browser handle.
	UserHandleCookie = "ai_search_handle"
	UserHandleLocal  = "user_handle"
)

// Event types published to NATS.
const (
	EventChatAnswered        = "CHAT_ANSWERED"
	EventConversationDeleted = "CONVERSATION_DELETED"
)
