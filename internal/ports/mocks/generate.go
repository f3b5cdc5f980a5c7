//go:generate mockgen -source=../result_cache.go     -destination=./mock_result_cache.go     -package=mocks
//go:generate mockgen -source=../query_executor.go   -destination=./mock_query_executor.go   -package=mocks
//go:generate mockgen -source=../validator.go        -destination=./mock_validator.go        -package=mocks
//go:generate mockgen -source=../logger.go           -destination=./mock_logger.go           -package=mocks
//go:generate mockgen -source=../message_consumer.go -destination=./mock_message_consumer.go -package=mocks
//go:generate mockgen -source=../catalog_service.go  -destination=./mock_catalog_service.go  -package=mocks

package mocks
