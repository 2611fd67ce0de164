package interfaces

type SchedulerInterface interface {
	Init()
	Stop()
	Sync() error
	Export() error
}

type CompressorInterface interface {
	Compress(val []byte) ([]byte, error)
	Decompress(val []byte) ([]byte, error)
}
