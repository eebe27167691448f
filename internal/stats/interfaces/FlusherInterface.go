package interfaces

type FlusherInterface interface {
	Init()
	Stop()
	Restore() error
	Persist() error
}
