package order

import "errors"

var (
	// ErrOrderNotFound возвращается, когда заказ не найден
	ErrOrderNotFound = errors.New("order.repository: order not found")

	// ErrResourceBusy возвращается, когда ограничение исключения обнаружило пересечение занятости ресурса
	ErrResourceBusy = errors.New("order.repository: resource is already occupied for the window")

	// ErrForeignKey возвращается, когда услуга не существует или ресурс не принадлежит услуге заказа
	ErrForeignKey = errors.New("order.repository: referenced service or resource does not match")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("order.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("order.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("order.repository: failed to scan row")
)
