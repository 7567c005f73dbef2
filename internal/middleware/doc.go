// Package middleware 提供 HTTP 請求處理的中間件。
//
// 目前只有身份驗證：從 Authorization 標頭取出 Bearer token，
// 驗證後把用戶 ID 放進請求上下文給後面的處理器用。
package middleware
