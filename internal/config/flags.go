package config

import (
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// Имена флагов командной строки.
const (
	FlagAddress  = "a"
	FlagConfig   = "c"
	FlagLogLevel = "l"
)

// NetAddress представляет сетевой адрес с хостом и портом.
//
// Реализует интерфейсы pflag.Value и AddrSetter.
type NetAddress struct {
	Host string // Имя хоста
	Port int    // Порт
}

// String возвращает строковое представление сетевого адреса в формате host:port.
func (a NetAddress) String() string {
	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set разбирает строку вида host:port и устанавливает значения Host и Port.
//
// Если порт не указан, по умолчанию используется 8080.
func (a *NetAddress) Set(s string) error {
	host, port, found := strings.Cut(s, ":")
	a.Host = host
	if !found {
		a.Port = 8080
		return nil
	}
	p, err := strconv.Atoi(port)
	if err != nil {
		return err
	}
	a.Port = p
	return nil
}

// Type возвращает имя типа значения для справки pflag.
func (a *NetAddress) Type() string {
	return "host:port"
}

// Flags — значения флагов командной строки демо-приложения.
type Flags struct {
	Address    *NetAddress
	ConfigPath string
	LogLevel   string
}

// RegisterFlags регистрирует флаги приложения в fs.
//
// Возвращает структуру, поля которой заполняются после fs.Parse.
func RegisterFlags(fs *pflag.FlagSet) *Flags {
	f := &Flags{Address: &NetAddress{Host: "localhost", Port: 8080}}
	fs.VarP(f.Address, "address", FlagAddress, "Net address host:port")
	fs.StringVarP(&f.ConfigPath, "config", FlagConfig, DefaultPropertiesFile, "Path to the RHQ properties file")
	fs.StringVarP(&f.LogLevel, "log-level", FlagLogLevel, "info", "Log level (debug, info, warn, error)")
	return f
}
