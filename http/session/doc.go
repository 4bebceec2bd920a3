/*
Package session manages user web sessions backed by gorilla/sessions.

A Service stores sessions in signed and encrypted cookies by default.
WithRedis switches storage to Redis through boj/redistore.

Sessions carry one-shot Flash messages and the ID of the signed-in user.
*/
package session
