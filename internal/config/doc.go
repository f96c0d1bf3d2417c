// Package config загружает конфигурацию kannon.
//
// Источники (по убыванию приоритета):
//
//  1. флаги командной строки (cobra/pflag)
//  2. переменные окружения KANNON_* ("-" в имени ключа заменяется на "_",
//     например KANNON_BROKER_URL для --broker-url)
//  3. файл конфигурации (--config, YAML/JSON/TOML)
//  4. значения по умолчанию
//
// После загрузки Config проверяется validator'ом по тегам validate.
// Ключи совпадают с именами флагов.
package config
