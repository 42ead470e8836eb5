package service

import "errors"

var ErrConversationNotFound = errors.New("conversation not found")
