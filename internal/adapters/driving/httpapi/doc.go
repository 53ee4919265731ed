// Package httpapi exposes the relay over HTTP.
//
// Routes:
//
//	GET  /api/health     liveness
//	POST /api/chat       {message}          create a chat
//	POST /api/chat/send  {chatId, message}  continue a chat
//
// Every other path answers 404 with the list of available endpoints. CORS is
// open to all origins and OPTIONS preflights answer 200 with no body.
package httpapi
