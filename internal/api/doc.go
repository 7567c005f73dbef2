// Package api 負責 HTTP 路由與處理器。
//
// 處理器把 HTTP 請求轉成服務層呼叫，再把結果與錯誤轉回對應的
// HTTP 響應；WebSocket 升級也在這裡，升級後的連線交給 realtime 管理。
package api
