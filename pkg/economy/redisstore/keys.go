package redisstore

import "fmt"

type keys struct {
	prefix string
}

// user returns the key of the user hash
func (k keys) user(id string) string {
	return fmt.Sprintf("%s:user:%s", k.prefix, id)
}

// nameIndex returns the key of the name -> user id index
func (k keys) nameIndex(name string) string {
	return fmt.Sprintf("%s:idx:name:%s", k.prefix, name)
}

// round returns the key of the round hash
func (k keys) round(id string) string {
	return fmt.Sprintf("%s:round:%s", k.prefix, id)
}

// pools returns the key of the singleton pools hash
func (k keys) pools() string {
	return fmt.Sprintf("%s:pools", k.prefix)
}
