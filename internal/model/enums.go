package model

// ConversationState is the explicit per-user conversation position. Whether
// a video is staged is tracked by the staging cache, not duplicated here.
type ConversationState string

const (
	StateIdle            ConversationState = "idle"
	StateConnecting      ConversationState = "connecting"
	StateAwaitingCaption ConversationState = "awaiting_caption"
	StateConfirming      ConversationState = "confirming"
	StatePublishing      ConversationState = "publishing"
)

// PublishErrorKind tags a failed publish attempt's terminal state.
type PublishErrorKind string

const (
	PublishErrorNone      PublishErrorKind = ""
	PublishErrorContainer PublishErrorKind = "ContainerFailed"
	PublishErrorTimeout   PublishErrorKind = "Timeout"
	PublishErrorPublish   PublishErrorKind = "PublishFailed"
)
