// internal/repository/mock_gen.go
package repository

//go:generate mockgen -source=./user.go -destination=../mocks/mock_user_repository.go -package=mocks UserRepositoryIface
//go:generate mockgen -source=./profile.go -destination=../mocks/mock_profile_repository.go -package=mocks ProfileRepositoryIface
//go:generate mockgen -source=./event.go -destination=../mocks/mock_event_repository.go -package=mocks EventRepositoryIface
//go:generate mockgen -source=./opportunity.go -destination=../mocks/mock_opportunity_repository.go -package=mocks OpportunityRepositoryIface
//go:generate mockgen -source=./match_request.go -destination=../mocks/mock_match_request_repository.go -package=mocks MatchRequestRepositoryIface
//go:generate mockgen -source=./match.go -destination=../mocks/mock_match_repository.go -package=mocks MatchRepositoryIface
//go:generate mockgen -source=./notification.go -destination=../mocks/mock_notification_repository.go -package=mocks NotificationRepositoryIface
//go:generate mockgen -source=./history.go -destination=../mocks/mock_history_repository.go -package=mocks HistoryRepositoryIface
