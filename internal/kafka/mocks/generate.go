//go:generate mockgen -source=../consumer.go -destination=./mock_consumer.go -package=mocks -mock_names=reader=MockReader,warmUpHandler=MockWarmUpHandler

package mocks
