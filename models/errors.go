package models

import "github.com/pkg/errors"

// Ошибки движка аукциона и жизненного цикла задач.
// Контроллеры транслируют их в коды ответов, хранилище их не порождает.
var (
	// ErrNoAuctionWindow у задачи не задано окно аукциона
	ErrNoAuctionWindow = errors.New("у задачи не задано окно аукциона")
	// ErrBidTooLow ставка не ниже текущей стоимости аукциона
	ErrBidTooLow = errors.New("ставка должна быть строго ниже текущей стоимости")
	// ErrBetterBidExists уже есть ставка не хуже новой
	ErrBetterBidExists = errors.New("уже существует более выгодная ставка")
	// ErrAuctionClosed аукцион уже закрыт (задача покинула бэклог)
	ErrAuctionClosed = errors.New("аукцион уже закрыт")
	// ErrInvalidTransition недопустимый переход статуса
	ErrInvalidTransition = errors.New("недопустимая смена статуса задачи")
	// ErrPermissionDenied операция недоступна для роли пользователя
	ErrPermissionDenied = errors.New("операция недоступна")
	// ErrCommentRequired возврат на доработку требует комментария
	ErrCommentRequired = errors.New("необходимо указать комментарий")
	// ErrExecutorRequired перевод в работу без назначенного исполнителя
	ErrExecutorRequired = errors.New("у задачи не назначен исполнитель")
	// ErrGradeTooLow грейд сотрудника ниже минимального для задачи
	ErrGradeTooLow = errors.New("грейд сотрудника ниже минимального для задачи")
)
