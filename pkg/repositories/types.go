package repositories

type ErrNotFound struct {
}

func (e *ErrNotFound) Error() string {
	return "not found"
}

func IsNotFound(err error) bool {
	_, ok := err.(*ErrNotFound)
	return ok
}

type ErrEmailExists struct {
}

func (e *ErrEmailExists) Error() string {
	return "email already exists"
}

func IsEmailExists(err error) bool {
	_, ok := err.(*ErrEmailExists)
	return ok
}
