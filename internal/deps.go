package internal

import (
	"bitwise74/files-api/internal/kv"
	"bitwise74/files-api/internal/service"
	"bitwise74/files-api/internal/store"
)

type Deps struct {
	Store    store.Store
	KV       kv.Store
	Sessions *service.Sessions
	Users    *service.Users
	Files    *service.Files
}
