// internal/service/mock_gen.go
package service

//go:generate mockgen -typed -source=./lifecycle.go -destination=../mocks/mock_notifier.go -package=mocks Notifier
